package csvx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kontaktvault/internal/models"
)

func TestExportImport_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")

	anna := models.NewContact("Anna Svensson")
	anna.Phones = []models.PhoneNumber{
		{Number: "0701234567", Type: "mobile"},
		{Number: "08 123 45", Type: "work"},
	}
	anna.Emails = []models.EmailAddress{{Address: "anna@x.com", Type: "personal"}}
	anna.Street = "Storgatan 1"
	anna.PostalCode = "11122"
	anna.City = "Stockholm"
	anna.Country = "Sweden"
	anna.Company = "Volvo"
	anna.Title = "Engineer"
	anna.Birthday = "1985-03-14"
	anna.Notes = "met at a conference"
	anna.Tags = []string{"vip", "friend"}
	anna.SocialMedia = []models.SocialMedia{{Platform: "linkedin", Username: "anna-svensson"}}
	anna.IsFavorite = true

	require.NoError(t, Export([]models.Contact{anna}, path))

	res, err := Import(path)
	require.NoError(t, err)
	require.Empty(t, res.Warnings)
	require.Len(t, res.Contacts, 1)

	got := res.Contacts[0]
	require.Equal(t, "Anna Svensson", got.Name)
	require.Equal(t, anna.Phones, got.Phones)
	require.Equal(t, anna.Emails, got.Emails)
	require.Equal(t, "Storgatan 1", got.Street)
	require.Equal(t, "11122", got.PostalCode)
	require.Equal(t, "Stockholm", got.City)
	require.Equal(t, "Sweden", got.Country)
	require.Equal(t, "Volvo", got.Company)
	require.Equal(t, "Engineer", got.Title)
	require.Equal(t, "1985-03-14", got.Birthday)
	require.Equal(t, "met at a conference", got.Notes)
	require.Equal(t, []string{"vip", "friend"}, got.Tags)
	require.Equal(t, anna.SocialMedia, got.SocialMedia)
	require.True(t, got.IsFavorite)
	require.NotEqual(t, anna.ID, got.ID, "import mints fresh ids")
}

func TestExport_WritesBOMAndHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Export(nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "\ufeff"))
	require.Contains(t, string(data), "Name,Phone1,Phone1Type")
}

func TestImport_OutlookStyleHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outlook.csv")
	csv := "First Name,Last Name,E-mail Address,Mobile Phone,Business City\n" +
		"Anna,Svensson,anna@x.com,0701234567,Stockholm\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	res, err := Import(path)
	require.NoError(t, err)
	require.Len(t, res.Contacts, 1)

	got := res.Contacts[0]
	require.Equal(t, "Anna Svensson", got.Name)
	require.Equal(t, "anna@x.com", got.PrimaryEmail())
	require.Equal(t, "0701234567", got.PrimaryPhone())
	require.Equal(t, "mobile", got.Phones[0].Type)
	require.Equal(t, "Stockholm", got.City)
}

func TestImport_SemicolonDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "semi.csv")
	csv := "Name;Phone1;Email1\nAnna;0701234567;anna@x.com\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	res, err := Import(path)
	require.NoError(t, err)
	require.Len(t, res.Contacts, 1)
	require.Equal(t, "Anna", res.Contacts[0].Name)
	require.Equal(t, "0701234567", res.Contacts[0].PrimaryPhone())
}

func TestImport_NameFallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.csv")
	csv := "Company,E-mail Address\n" +
		"Volvo,\n" +
		",erik@example.org\n" +
		",\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	res, err := Import(path)
	require.NoError(t, err)
	require.Len(t, res.Contacts, 2)
	require.Equal(t, "Volvo", res.Contacts[0].Name)
	require.Equal(t, "erik", res.Contacts[1].Name, "email local part as last resort")
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "row 4")
}

func TestImport_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Phone1\n"), 0o600))

	res, err := Import(path)
	require.NoError(t, err)
	require.Empty(t, res.Contacts)

	_, err = Import(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
