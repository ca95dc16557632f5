package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kontaktvault/internal/database"
	"kontaktvault/internal/logging"
	"kontaktvault/internal/models"
	"kontaktvault/internal/passx"
)

func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	prev := readPassword
	t.Cleanup(func() { readPassword = prev })
	readPassword = func(fd int) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, errors.New("no more stubbed passwords")
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
}

func TestPromptPassword_UsesSeam(t *testing.T) {
	stubPasswords(t, "mySecret1")
	got, err := promptPassword("Password: ")
	require.NoError(t, err)
	require.Equal(t, "mySecret1", got)
}

func TestPromptNewPassword_Mismatch(t *testing.T) {
	stubPasswords(t, "mySecret1", "other1234")
	_, err := promptNewPassword()
	require.ErrorContains(t, err, "do not match")
}

func TestPromptNewPassword_RejectsPolicyViolation(t *testing.T) {
	stubPasswords(t, "abc")
	_, err := promptNewPassword()
	require.ErrorIs(t, err, passx.ErrTooShort)
}

func TestPromptLine_TrimsInput(t *testing.T) {
	prev := stdin
	t.Cleanup(func() { stdin = prev })
	stdin = strings.NewReader("  y  \n")

	got, err := promptLine("? ")
	require.NoError(t, err)
	require.Equal(t, "y", got)
}

func TestParsePhoneAndEmail(t *testing.T) {
	require.Equal(t, models.PhoneNumber{Number: "0701234567", Type: "mobile"}, parsePhone("0701234567"))
	require.Equal(t, models.PhoneNumber{Number: "08 123 45", Type: "work"}, parsePhone("08 123 45:work"))
	require.Equal(t, models.EmailAddress{Address: "anna@x.com", Type: "personal"}, parseEmail("anna@x.com"))
	require.Equal(t, models.EmailAddress{Address: "anna@v.se", Type: "work"}, parseEmail("anna@v.se:work"))
}

func TestParseSocial(t *testing.T) {
	sm, err := parseSocial("LinkedIn:anna-svensson")
	require.NoError(t, err)
	require.Equal(t, models.SocialMedia{Platform: "linkedin", Username: "anna-svensson"}, sm)

	// Usernames may contain colons (full profile URLs).
	sm, err = parseSocial("website:https://example.org")
	require.NoError(t, err)
	require.Equal(t, "https://example.org", sm.Username)

	_, err = parseSocial("justausername")
	require.Error(t, err)
}

func TestShortID(t *testing.T) {
	require.Equal(t, "12345678", shortID("12345678-abcd-efgh"))
	require.Equal(t, "abc", shortID("abc"))
}

func TestWithoutTags(t *testing.T) {
	require.Equal(t, []string{"friend"}, withoutTags([]string{"vip", "friend"}, []string{"vip"}))
	require.Nil(t, withoutTags([]string{"vip"}, []string{"vip"}))
}

func TestStrengthLine_BarMatchesScore(t *testing.T) {
	line := strengthLine(passx.AnalyzeStrength("Tr0ub4dor&9!xy"))
	require.Contains(t, line, "████")
	require.Contains(t, line, "Very strong")

	line = strengthLine(passx.AnalyzeStrength("aaaaaaaa1"))
	require.Contains(t, line, "░░░░")
}

func TestResolveContact(t *testing.T) {
	ctx := context.Background()
	m := database.NewManager(logging.NewNopLogger())
	require.NoError(t, m.Create(ctx, filepath.Join(t.TempDir(), "c.kvdb"), "", "mySecret1"))

	anna := models.NewContact("Anna Svensson")
	erik := models.NewContact("Erik")
	require.NoError(t, m.AddContact(anna))
	require.NoError(t, m.AddContact(erik))

	got, err := resolveContact(m, anna.ID)
	require.NoError(t, err)
	require.Equal(t, anna.ID, got.ID)

	got, err = resolveContact(m, anna.ID[:8])
	require.NoError(t, err)
	require.Equal(t, anna.ID, got.ID)

	got, err = resolveContact(m, "anna svensson")
	require.NoError(t, err)
	require.Equal(t, anna.ID, got.ID)

	_, err = resolveContact(m, "nobody")
	require.ErrorContains(t, err, "no contact matches")
}

func TestRenderContact(t *testing.T) {
	c := models.NewContact("Anna Svensson")
	c.Phones = []models.PhoneNumber{{Number: "0701234567", Type: "mobile"}}
	c.Emails = []models.EmailAddress{{Address: "anna@x.com", Type: "personal"}}
	c.Street = "Storgatan 1"
	c.PostalCode = "11122"
	c.City = "Stockholm"
	c.Company = "Volvo"
	c.Title = "Engineer"
	c.Tags = []string{"vip"}
	c.SocialMedia = []models.SocialMedia{{Platform: "linkedin", Username: "anna-svensson"}}

	var buf bytes.Buffer
	renderContact(&buf, c)
	out := buf.String()

	require.Contains(t, out, "Anna Svensson")
	require.Contains(t, out, "0701234567 (mobile)")
	require.Contains(t, out, "anna@x.com (personal)")
	require.Contains(t, out, "Storgatan 1, 11122 Stockholm")
	require.Contains(t, out, "Engineer, Volvo")
	require.Contains(t, out, "https://linkedin.com/in/anna-svensson")
	require.Contains(t, out, "vip")
}
