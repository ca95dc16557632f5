package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewContact_SetsIDAndTimestamps(t *testing.T) {
	c := NewContact("Anna Svensson")
	require.NotEmpty(t, c.ID)
	require.Equal(t, "Anna Svensson", c.Name)
	require.Equal(t, c.CreatedAt, c.UpdatedAt)

	_, err := time.Parse(TimestampFormat, c.CreatedAt)
	require.NoError(t, err)

	other := NewContact("Anna Svensson")
	require.NotEqual(t, c.ID, other.ID)
}

func TestTouch_RefreshesUpdatedAt(t *testing.T) {
	c := NewContact("Anna")
	c.UpdatedAt = "2020-01-01T00:00:00Z"
	c.Touch()
	require.Greater(t, c.UpdatedAt, "2020-01-01T00:00:00Z")
}

func TestMatchesSearch(t *testing.T) {
	c := Contact{
		Name:    "Anna Svensson",
		Phones:  []PhoneNumber{{Number: "070 123 45 67", Type: "mobile"}},
		Emails:  []EmailAddress{{Address: "anna@x.com", Type: "personal"}},
		Company: "Volvo",
		Title:   "Engineer",
		Tags:    []string{"vip"},
	}

	require.True(t, c.MatchesSearch("anna"))
	require.True(t, c.MatchesSearch("ANNA"))
	require.True(t, c.MatchesSearch("svensson"))
	require.True(t, c.MatchesSearch("0701234567"), "phone matches with whitespace stripped")
	require.True(t, c.MatchesSearch("anna@x.com"))
	require.True(t, c.MatchesSearch("volvo"))
	require.True(t, c.MatchesSearch("engineer"))
	require.True(t, c.MatchesSearch("vip"))

	require.False(t, c.MatchesSearch("karin"))
	require.False(t, c.MatchesSearch("ericsson"))
}

func TestPrimaryPhoneAndEmail(t *testing.T) {
	var c Contact
	require.Empty(t, c.PrimaryPhone())
	require.Empty(t, c.PrimaryEmail())

	c.Phones = []PhoneNumber{{Number: "0701234567"}, {Number: "0812345"}}
	c.Emails = []EmailAddress{{Address: "anna@x.com"}}
	require.Equal(t, "0701234567", c.PrimaryPhone())
	require.Equal(t, "anna@x.com", c.PrimaryEmail())
}

func TestSocialMedia_ProfileURL(t *testing.T) {
	tests := []struct {
		platform, username, want string
	}{
		{"linkedin", "anna-svensson", "https://linkedin.com/in/anna-svensson"},
		{"twitter", "@anna", "https://twitter.com/anna"},
		{"github", "annasv", "https://github.com/annasv"},
		{"whatsapp", "+46 70 123 45 67", "https://wa.me/46701234567"},
		{"website", "example.com", "https://example.com"},
		{"website", "https://example.com", "https://example.com"},
		{"mastodon", "@anna@social.example", "anna@social.example"},
		{"telegram", "https://t.me/anna", "https://t.me/anna"},
	}
	for _, tt := range tests {
		sm := SocialMedia{Platform: tt.platform, Username: tt.username}
		require.Equal(t, tt.want, sm.ProfileURL(), "%s/%s", tt.platform, tt.username)
	}
}

func TestHasTag(t *testing.T) {
	c := Contact{Tags: []string{"vip", "friend"}}
	require.True(t, c.HasTag("vip"))
	require.False(t, c.HasTag("vi"))
	require.False(t, c.HasTag("work"))
}
