// Package store holds the in-memory contact collection: the decrypted
// database document and its CRUD, tag-index and search operations.
package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"kontaktvault/internal/models"
)

// SortBy selects the ordering of search results.
type SortBy string

const (
	SortByName      SortBy = "name"       // ascending, case-insensitive
	SortByCompany   SortBy = "company"    // ascending, name as tiebreak
	SortByUpdatedAt SortBy = "updated_at" // most recently updated first
)

// Filter narrows and orders a search. All active filters combine with AND;
// the zero value matches everything sorted by name.
type Filter struct {
	Query         string
	Tag           string
	FavoritesOnly bool
	SortBy        SortBy
}

// Store is the complete decrypted database document: metadata, the ordered
// contact list, the derived tag list and the password verification token.
// It is the unit of serialization and encryption.
//
// Tags is always the sorted, deduplicated union of all contacts' tags; it
// is recomputed after every mutation.
type Store struct {
	Metadata     models.Metadata  `json:"metadata"`
	Contacts     []models.Contact `json:"contacts"`
	Tags         []string         `json:"tags"`
	Verification []byte           `json:"verification"`
}

// New returns an empty store with the given metadata.
func New(md models.Metadata) *Store {
	return &Store{
		Metadata: md,
		Contacts: []models.Contact{},
		Tags:     []string{},
	}
}

// Decode reconstructs a store from a decrypted payload.
func Decode(data []byte) (*Store, error) {
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode database payload: %w", err)
	}
	return &s, nil
}

// Encode serializes the store to the canonical JSON document. Together
// with Decode it round-trips losslessly for all fields.
func (s *Store) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode database payload: %w", err)
	}
	return data, nil
}

// Len returns the number of contacts.
func (s *Store) Len() int { return len(s.Contacts) }

// Add appends a contact and recomputes the tag list.
func (s *Store) Add(c models.Contact) {
	s.Contacts = append(s.Contacts, c)
	s.RecomputeTags()
}

// Update replaces the contact with a matching id, refreshing its
// updated_at. Returns false if no contact matched.
func (s *Store) Update(c models.Contact) bool {
	for i := range s.Contacts {
		if s.Contacts[i].ID == c.ID {
			c.Touch()
			s.Contacts[i] = c
			s.RecomputeTags()
			return true
		}
	}
	return false
}

// Remove deletes the first contact with the given id. Returns false if
// absent.
func (s *Store) Remove(id string) bool {
	for i := range s.Contacts {
		if s.Contacts[i].ID == id {
			s.Contacts = append(s.Contacts[:i], s.Contacts[i+1:]...)
			s.RecomputeTags()
			return true
		}
	}
	return false
}

// FindByID returns a copy of the matching contact.
func (s *Store) FindByID(id string) (models.Contact, bool) {
	for i := range s.Contacts {
		if s.Contacts[i].ID == id {
			return s.Contacts[i], true
		}
	}
	return models.Contact{}, false
}

// RecomputeTags rebuilds the global tag list as the sorted, deduplicated
// union of all contacts' tags.
func (s *Store) RecomputeTags() {
	set := make(map[string]struct{})
	for _, c := range s.Contacts {
		for _, t := range c.Tags {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	s.Tags = tags
}

// Search filters contacts per f and returns them in the requested order.
// The sort is stable: contacts with equal keys keep their stored order.
func (s *Store) Search(f Filter) []models.Contact {
	results := make([]models.Contact, 0, len(s.Contacts))
	for _, c := range s.Contacts {
		if f.Query != "" && !c.MatchesSearch(f.Query) {
			continue
		}
		if f.Tag != "" && !c.HasTag(f.Tag) {
			continue
		}
		if f.FavoritesOnly && !c.IsFavorite {
			continue
		}
		results = append(results, c)
	}

	switch f.SortBy {
	case SortByCompany:
		sort.SliceStable(results, func(i, j int) bool {
			ci, cj := strings.ToLower(results[i].Company), strings.ToLower(results[j].Company)
			if ci != cj {
				return ci < cj
			}
			return strings.ToLower(results[i].Name) < strings.ToLower(results[j].Name)
		})
	case SortByUpdatedAt:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].UpdatedAt > results[j].UpdatedAt
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return strings.ToLower(results[i].Name) < strings.ToLower(results[j].Name)
		})
	}
	return results
}
