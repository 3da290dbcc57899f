package models

type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Verified bool   `json:"verified"`
}

// Handle returns the username prefixed with "@".
func (u User) Handle() string {
	return "@" + u.Username
}

// FirstName is the first word of Name, used in the home greeting.
func (u User) FirstName() string {
	for i, r := range u.Name {
		if r == ' ' {
			return u.Name[:i]
		}
	}
	return u.Name
}
