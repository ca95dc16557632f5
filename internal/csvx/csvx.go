// Package csvx translates between tabular CSV files and contact records.
// It sits outside the storage core: the column-mapping heuristics accept
// exports from a variety of tools (Outlook-style headers included) and
// produce plain contact values for the import boundary.
package csvx

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kontaktvault/internal/filex"
	"kontaktvault/internal/models"
)

// Columns is the fixed header written on export.
var Columns = []string{
	"Name",
	"Phone1", "Phone1Type",
	"Phone2", "Phone2Type",
	"Phone3", "Phone3Type",
	"Email1", "Email1Type",
	"Email2", "Email2Type",
	"Street", "PostalCode", "City", "Country",
	"Company",
	"Title",
	"Birthday",
	"Notes",
	"Tags",
	"LinkedIn", "Twitter", "Facebook", "Instagram", "Website",
	"IsFavorite",
}

// utf8BOM keeps exported files readable in Excel.
const utf8BOM = "\ufeff"

// ImportResult carries imported contacts plus per-row warnings for rows
// that could not be mapped.
type ImportResult struct {
	Contacts []models.Contact
	Warnings []string
}

// Export writes contacts to a CSV file using the fixed column set.
func Export(contacts []models.Contact, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := filex.EnsureDir(dir); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := bw.WriteString(utf8BOM); err != nil {
		return err
	}

	w := csv.NewWriter(bw)
	if err := w.Write(Columns); err != nil {
		return err
	}
	for _, c := range contacts {
		if err := w.Write(contactToRow(c)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// Import reads a CSV file and maps its rows to contacts. The delimiter is
// sniffed from the header line (';' exports are common in Swedish Excel).
// Rows without a resolvable name are skipped with a warning.
func Import(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	header, err := br.ReadString('\n')
	if err != nil && header == "" {
		return nil, fmt.Errorf("read header: %w", err)
	}
	comma := ','
	if strings.Contains(header, ";") && !strings.Contains(header, ",") {
		comma = ';'
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	br.Reset(f)

	r := csv.NewReader(br)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return &ImportResult{}, nil
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}

	res := &ImportResult{}
	for i, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(record) {
				row[strings.TrimSpace(h)] = record[j]
			}
		}

		c := rowToContact(row)
		if c.Name == "" {
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d: no name found", i+2))
			continue
		}
		res.Contacts = append(res.Contacts, c)
	}
	return res, nil
}

func contactToRow(c models.Contact) []string {
	row := make(map[string]string, len(Columns))

	row["Name"] = c.Name
	row["Street"] = c.Street
	row["PostalCode"] = c.PostalCode
	row["City"] = c.City
	row["Country"] = c.Country
	row["Company"] = c.Company
	row["Title"] = c.Title
	row["Birthday"] = c.Birthday
	row["Notes"] = c.Notes
	row["Tags"] = strings.Join(c.Tags, ",")
	if c.IsFavorite {
		row["IsFavorite"] = "Yes"
	} else {
		row["IsFavorite"] = "No"
	}

	for i, p := range c.Phones {
		if i >= 3 {
			break
		}
		row[fmt.Sprintf("Phone%d", i+1)] = p.Number
		row[fmt.Sprintf("Phone%dType", i+1)] = p.Type
	}
	for i, e := range c.Emails {
		if i >= 2 {
			break
		}
		row[fmt.Sprintf("Email%d", i+1)] = e.Address
		row[fmt.Sprintf("Email%dType", i+1)] = e.Type
	}

	platformCols := map[string]string{
		"linkedin":  "LinkedIn",
		"twitter":   "Twitter",
		"facebook":  "Facebook",
		"instagram": "Instagram",
		"website":   "Website",
	}
	for _, sm := range c.SocialMedia {
		if col, ok := platformCols[strings.ToLower(sm.Platform)]; ok {
			row[col] = sm.Username
		}
	}

	out := make([]string, len(Columns))
	for i, col := range Columns {
		out[i] = row[col]
	}
	return out
}

func rowToContact(row map[string]string) models.Contact {
	c := models.NewContact("")

	c.Name = resolveName(row)
	c.Phones = resolvePhones(row)
	c.Emails = resolveEmails(row)

	c.Street = strings.TrimSpace(first(row, "Street", "Gata", "Gatuadress", "Business Street", "Home Street", "Address", "Adress"))
	c.PostalCode = strings.TrimSpace(first(row, "PostalCode", "Postnummer", "Postal Code", "Business Postal Code", "Home Postal Code"))
	c.City = strings.TrimSpace(first(row, "City", "Ort", "Stad", "Business City", "Home City"))
	c.Country = strings.TrimSpace(first(row, "Country", "Land"))
	c.Company = strings.TrimSpace(first(row, "Company", "Företag", "Company Name"))
	c.Title = strings.TrimSpace(first(row, "Title", "Titel", "Job Title"))
	c.Birthday = strings.TrimSpace(first(row, "Birthday", "Födelsedag"))
	c.Notes = strings.TrimSpace(first(row, "Notes", "Anteckningar", "Body"))

	if tags := first(row, "Tags", "Taggar", "Categories"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				c.Tags = append(c.Tags, t)
			}
		}
	}

	socials := []struct{ col, platform string }{
		{"LinkedIn", "linkedin"},
		{"Twitter", "twitter"},
		{"Facebook", "facebook"},
		{"Instagram", "instagram"},
		{"Website", "website"},
		{"GitHub", "github"},
		{"Telegram", "telegram"},
		{"WhatsApp", "whatsapp"},
	}
	for _, s := range socials {
		if v := first(row, s.col, strings.ToLower(s.col)); v != "" {
			c.SocialMedia = append(c.SocialMedia, models.SocialMedia{
				Platform: s.platform,
				Username: strings.TrimSpace(v),
			})
		}
	}

	switch strings.ToLower(row["IsFavorite"]) {
	case "yes", "ja", "true", "1":
		c.IsFavorite = true
	}
	return c
}

func resolveName(row map[string]string) string {
	name := first(row, "Name", "Namn", "Full Name", "Fullständigt namn", "Display Name")
	if name == "" {
		firstName := first(row, "First Name", "Förnamn")
		lastName := first(row, "Last Name", "Efternamn")
		name = strings.TrimSpace(firstName + " " + lastName)
	}
	if name == "" {
		name = first(row, "Company", "Företag")
	}
	if name == "" {
		// Last resort: the local part of any email-looking column.
		for k, v := range row {
			if v != "" && strings.Contains(strings.ToLower(k), "mail") && strings.Contains(v, "@") {
				name = strings.SplitN(v, "@", 2)[0]
				break
			}
		}
	}
	return strings.TrimSpace(name)
}

func resolvePhones(row map[string]string) []models.PhoneNumber {
	var phones []models.PhoneNumber
	for i := 1; i <= 3; i++ {
		number := first(row, fmt.Sprintf("Phone%d", i), fmt.Sprintf("Phone %d", i), fmt.Sprintf("Telefon%d", i))
		if number == "" {
			continue
		}
		ptype := first(row, fmt.Sprintf("Phone%dType", i), fmt.Sprintf("Phone %d Type", i))
		if ptype == "" {
			ptype = "mobile"
		}
		phones = append(phones, models.PhoneNumber{
			Number: strings.TrimSpace(number),
			Type:   strings.ToLower(ptype),
		})
	}
	if len(phones) > 0 {
		return phones
	}

	fallbacks := []struct{ col, ptype string }{
		{"Mobile Phone", "mobile"},
		{"Business Phone", "work"},
		{"Home Phone", "home"},
		{"Primary Phone", "mobile"},
		{"Telefon", "mobile"},
		{"Mobil", "mobile"},
		{"Mobiltelefon", "mobile"},
		{"Phone", "mobile"},
		{"Tel", "mobile"},
	}
	for _, fb := range fallbacks {
		if v := row[fb.col]; v != "" {
			phones = append(phones, models.PhoneNumber{Number: strings.TrimSpace(v), Type: fb.ptype})
		}
	}
	if len(phones) > 0 {
		return phones
	}

	// Anything that looks like a phone column.
	for k, v := range row {
		lk := strings.ToLower(k)
		if v != "" && (strings.Contains(lk, "phone") || strings.Contains(lk, "tel") || strings.Contains(lk, "mobil")) {
			phones = append(phones, models.PhoneNumber{Number: strings.TrimSpace(v), Type: "mobile"})
			break
		}
	}
	return phones
}

func resolveEmails(row map[string]string) []models.EmailAddress {
	var emails []models.EmailAddress
	for i := 1; i <= 2; i++ {
		addr := first(row, fmt.Sprintf("Email%d", i), fmt.Sprintf("E-mail %d", i), fmt.Sprintf("Email %d Address", i))
		if addr == "" {
			continue
		}
		etype := first(row, fmt.Sprintf("Email%dType", i))
		if etype == "" {
			etype = "personal"
		}
		emails = append(emails, models.EmailAddress{
			Address: strings.TrimSpace(addr),
			Type:    strings.ToLower(etype),
		})
	}
	if len(emails) > 0 {
		return emails
	}

	for _, col := range []string{"E-mail Address", "E-mail 2 Address", "E-mail 3 Address", "Email", "E-post", "Mail", "E-mail"} {
		if v := row[col]; v != "" {
			emails = append(emails, models.EmailAddress{Address: strings.TrimSpace(v), Type: "personal"})
		}
	}
	if len(emails) > 0 {
		return emails
	}

	for k, v := range row {
		if v != "" && strings.Contains(strings.ToLower(k), "mail") && strings.Contains(v, "@") {
			emails = append(emails, models.EmailAddress{Address: strings.TrimSpace(v), Type: "personal"})
			break
		}
	}
	return emails
}

// first returns the first non-empty value among the named columns.
func first(row map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := row[k]; v != "" {
			return v
		}
	}
	return ""
}
