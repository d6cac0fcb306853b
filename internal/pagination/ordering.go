package pagination

import (
	"slices"
	"strings"
	"time"

	"github.com/maxviazov/lead-service/internal/model"
)

// Key is the ordering key of a lead. Leads sort by CreatedAt descending,
// ties broken by ID descending, which makes the order total.
type Key struct {
	CreatedAt time.Time
	ID        string
}

// KeyOf extracts the ordering key of a lead.
func KeyOf(l model.Lead) Key {
	return Key{CreatedAt: l.CreatedAt, ID: l.ID}
}

// Equal compares instants rather than wall clock representations.
func (k Key) Equal(o Key) bool {
	return k.ID == o.ID && k.CreatedAt.Equal(o.CreatedAt)
}

// Compare returns a negative number when a sorts before b (a is newer),
// a positive one when it sorts after, and zero only for equal keys.
func Compare(a, b Key) int {
	switch {
	case a.CreatedAt.After(b.CreatedAt):
		return -1
	case a.CreatedAt.Before(b.CreatedAt):
		return 1
	}
	return strings.Compare(b.ID, a.ID)
}

// Less reports whether a sorts strictly before b.
func Less(a, b Key) bool { return Compare(a, b) < 0 }

// SortLeads orders leads newest first in place.
func SortLeads(leads []model.Lead) {
	slices.SortFunc(leads, func(a, b model.Lead) int {
		return Compare(KeyOf(a), KeyOf(b))
	})
}
