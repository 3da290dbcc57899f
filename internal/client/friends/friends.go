// Package friends is the static friends directory shown on the friends tab.
package friends

import (
	"strings"

	"github.com/dmitrijs2005/peerwallet/internal/client/models"
)

// Demo is the built-in friend list.
var Demo = []models.Friend{
	{Name: "Алексей Громов", Username: "agromov", Avatar: "АГ", Online: true, Verified: true},
	{Name: "Мария Лебедева", Username: "mlebed", Avatar: "МЛ", Online: true, Verified: true},
	{Name: "Денис Ковалёв", Username: "dkovalev", Avatar: "ДК", Online: false, Verified: false},
	{Name: "Ольга Петрова", Username: "opetrov", Avatar: "ОП", Online: false, Verified: true},
}

type Directory struct {
	friends []models.Friend
}

func NewDirectory(list []models.Friend) *Directory {
	return &Directory{friends: append([]models.Friend(nil), list...)}
}

func (d *Directory) All() []models.Friend {
	return append([]models.Friend(nil), d.friends...)
}

// Filter returns friends whose name or username contains query, ignoring case
// and a leading "@". An empty query returns everyone.
func (d *Directory) Filter(query string) []models.Friend {
	q := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(query), "@"))
	out := make([]models.Friend, 0, len(d.friends))
	for _, f := range d.friends {
		if q == "" ||
			strings.Contains(strings.ToLower(f.Name), q) ||
			strings.Contains(strings.ToLower(f.Username), q) {
			out = append(out, f)
		}
	}
	return out
}

// Lookup finds a friend by exact username; a leading "@" is ignored.
func (d *Directory) Lookup(username string) (models.Friend, bool) {
	u := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(username), "@"))
	for _, f := range d.friends {
		if f.Username == u {
			return f, true
		}
	}
	return models.Friend{}, false
}

type Stats struct {
	Total    int
	Online   int
	Verified int
}

func (d *Directory) Stats() Stats {
	s := Stats{Total: len(d.friends)}
	for _, f := range d.friends {
		if f.Online {
			s.Online++
		}
		if f.Verified {
			s.Verified++
		}
	}
	return s
}
