package models

// Profile is everything the wallet screens need about the signed-in user.
type Profile struct {
	User         User
	Balances     Balances
	Transactions []Transaction
}

type Friend struct {
	Name     string
	Username string
	Avatar   string
	Online   bool
	Verified bool
}
