// Package journal holds the prayer journal records the mind map is built
// from, and read-only loaders for the formats a journal snapshot comes in.
package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GeneralBucket is the person name used for cards with no person.
const GeneralBucket = "General"

// Card is a single prayer request.
type Card struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Person      string    `json:"person,omitempty"` // Comma-separated names
	IsAnswered  bool      `json:"isAnswered"`
	CreatedAt   time.Time `json:"createdAt"`
}

// List is a named prayer list owning an ordered set of cards.
type List struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"createdAt"`
	IsCompleted bool      `json:"isCompleted"`
	Cards       []Card    `json:"cards"`
}

// ArchivedCard is a card moved out of its list.
type ArchivedCard struct {
	Card
	ListID     string    `json:"listId"`
	ListTitle  string    `json:"listTitle"`
	ArchivedAt time.Time `json:"archivedAt"`
}

// Snapshot is a point-in-time, read-only view of a journal.
type Snapshot struct {
	Lists    []List         `json:"prayerLists"`
	Archived []ArchivedCard `json:"archivedCards"`
}

// CardCount returns the number of cards across all lists.
func (s *Snapshot) CardCount() int {
	n := 0
	for _, l := range s.Lists {
		n += len(l.Cards)
	}
	return n
}

// People splits the person field into trimmed names in order of appearance.
// Blank entries map to general, and a name listed twice counts once.
func (c Card) People(general string) []string {
	if general == "" {
		general = GeneralBucket
	}
	if strings.TrimSpace(c.Person) == "" {
		return []string{general}
	}

	parts := strings.Split(c.Person, ",")
	names := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			name = general
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// idNamespace scopes the ids generated for records that arrive without one.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("prayermap/journal"))

// fillMissingIDs assigns stable ids to lists and cards with an empty id.
// The id depends only on the record's position and title, so loading the
// same file twice yields the same graph.
func (s *Snapshot) fillMissingIDs() {
	for i := range s.Lists {
		l := &s.Lists[i]
		if l.ID == "" {
			l.ID = uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("list:%d:%s", i, l.Title))).String()
		}
		for j := range l.Cards {
			c := &l.Cards[j]
			if c.ID == "" {
				c.ID = uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("card:%s:%d:%s", l.ID, j, c.Title))).String()
			}
		}
	}
}
