package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"kontaktvault/internal/models"
)

// contactFlags holds the field flags shared by add and update.
type contactFlags struct {
	phones     []string
	emails     []string
	socials    []string
	street     string
	postalCode string
	city       string
	country    string
	company    string
	title      string
	birthday   string
	notes      string
	tags       []string
	favorite   bool
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.phones, "phone", nil, "phone as number[:type], repeatable (types: mobile, home, work)")
	cmd.Flags().StringArrayVar(&f.emails, "email", nil, "email as address[:type], repeatable (types: personal, work)")
	cmd.Flags().StringArrayVar(&f.socials, "social", nil, "social profile as platform:username, repeatable")
	cmd.Flags().StringVar(&f.street, "street", "", "street address")
	cmd.Flags().StringVar(&f.postalCode, "postal-code", "", "postal code")
	cmd.Flags().StringVar(&f.city, "city", "", "city")
	cmd.Flags().StringVar(&f.country, "country", "", "country")
	cmd.Flags().StringVar(&f.company, "company", "", "company name")
	cmd.Flags().StringVar(&f.title, "title", "", "job title")
	cmd.Flags().StringVar(&f.birthday, "birthday", "", "birthday (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes")
	cmd.Flags().StringArrayVar(&f.tags, "tag", nil, "tag, repeatable")
	cmd.Flags().BoolVar(&f.favorite, "favorite", false, "mark as favorite")
}

func addCmd() *cobra.Command {
	var f contactFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer m.Close(ctx, true)

			c := models.NewContact(strings.TrimSpace(args[0]))
			for _, p := range f.phones {
				c.Phones = append(c.Phones, parsePhone(p))
			}
			for _, e := range f.emails {
				c.Emails = append(c.Emails, parseEmail(e))
			}
			for _, s := range f.socials {
				sm, err := parseSocial(s)
				if err != nil {
					return err
				}
				c.SocialMedia = append(c.SocialMedia, sm)
			}
			c.Street = f.street
			c.PostalCode = f.postalCode
			c.City = f.city
			c.Country = f.country
			c.Company = f.company
			c.Title = f.title
			c.Birthday = f.birthday
			c.Notes = f.notes
			c.Tags = f.tags
			c.IsFavorite = f.favorite

			if err := m.AddContact(c); err != nil {
				return err
			}
			if err := m.Save(ctx); err != nil {
				return err
			}
			successf("Added %s (%s)", c.Name, shortID(c.ID))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}
