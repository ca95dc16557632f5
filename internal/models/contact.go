// Package models defines the contact record types and database metadata
// that make up the decrypted payload.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampFormat is how created_at/updated_at are serialized. RFC 3339
// strings sort lexicographically in time order.
const TimestampFormat = time.RFC3339

// Now returns the current timestamp in the serialized format.
func Now() string { return time.Now().Format(TimestampFormat) }

// PhoneNumber is a number with a type tag (mobile, home, work, other).
type PhoneNumber struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

// EmailAddress is an address with a type tag (personal, work, other).
type EmailAddress struct {
	Address string `json:"address"`
	Type    string `json:"type"`
}

// SocialMedia references a profile on an external platform.
type SocialMedia struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
}

// ProfileURL builds the full profile URL from the platform and handle.
// Handles that are already URLs pass through unchanged; a leading "@" is
// stripped.
func (s SocialMedia) ProfileURL() string {
	username := strings.TrimSpace(s.Username)
	if strings.HasPrefix(username, "http://") || strings.HasPrefix(username, "https://") {
		return username
	}
	username = strings.TrimPrefix(username, "@")

	switch strings.ToLower(s.Platform) {
	case "linkedin":
		return "https://linkedin.com/in/" + username
	case "twitter":
		return "https://twitter.com/" + username
	case "x":
		return "https://x.com/" + username
	case "facebook":
		return "https://facebook.com/" + username
	case "instagram":
		return "https://instagram.com/" + username
	case "github":
		return "https://github.com/" + username
	case "telegram":
		return "https://t.me/" + username
	case "whatsapp":
		return "https://wa.me/" + strings.NewReplacer("+", "", " ", "").Replace(username)
	case "signal":
		return "https://signal.me/#p/" + username
	case "website":
		if strings.HasPrefix(username, "http") {
			return username
		}
		return "https://" + username
	default:
		return username
	}
}

// Contact is one record in the database.
type Contact struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Phones      []PhoneNumber  `json:"phones"`
	Emails      []EmailAddress `json:"emails"`
	Street      string         `json:"street"`
	PostalCode  string         `json:"postal_code"`
	City        string         `json:"city"`
	Country     string         `json:"country"`
	Company     string         `json:"company"`
	Title       string         `json:"title"`
	Birthday    string         `json:"birthday"` // ISO date, YYYY-MM-DD
	Notes       string         `json:"notes"`
	Tags        []string       `json:"tags"`
	SocialMedia []SocialMedia  `json:"social_media"`
	Photo       *string        `json:"photo"` // base64 image data, nil if none
	IsFavorite  bool           `json:"is_favorite"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// NewContact returns a contact with a fresh unique id and timestamps.
// The id is immutable after creation.
func NewContact(name string) Contact {
	now := Now()
	return Contact{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes the last-updated timestamp.
func (c *Contact) Touch() { c.UpdatedAt = Now() }

// PrimaryPhone returns the first phone number, or "".
func (c Contact) PrimaryPhone() string {
	if len(c.Phones) > 0 {
		return c.Phones[0].Number
	}
	return ""
}

// PrimaryEmail returns the first email address, or "".
func (c Contact) PrimaryEmail() string {
	if len(c.Emails) > 0 {
		return c.Emails[0].Address
	}
	return ""
}

// HasTag reports exact membership of tag in the contact's tag set.
func (c Contact) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchesSearch reports whether query matches the contact,
// case-insensitively, across name, any phone number (whitespace ignored),
// any email address, company, title and any tag.
func (c Contact) MatchesSearch(query string) bool {
	q := strings.ToLower(query)

	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	for _, p := range c.Phones {
		if strings.Contains(stripSpace(strings.ToLower(p.Number)), q) {
			return true
		}
	}
	for _, e := range c.Emails {
		if strings.Contains(strings.ToLower(e.Address), q) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(c.Company), q) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), q) {
		return true
	}
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}
