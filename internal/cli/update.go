package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func updateCmd() *cobra.Command {
	var (
		f          contactFlags
		name       string
		addTags    []string
		removeTags []string
	)

	cmd := &cobra.Command{
		Use:   "update <id|name>",
		Short: "Update fields of an existing contact",
		Long:  "Only flags that are set change the contact. --phone, --email and --social replace the stored lists.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer m.Close(ctx, true)

			c, err := resolveContact(m, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				c.Name = strings.TrimSpace(name)
			}
			if flags.Changed("phone") {
				c.Phones = nil
				for _, p := range f.phones {
					c.Phones = append(c.Phones, parsePhone(p))
				}
			}
			if flags.Changed("email") {
				c.Emails = nil
				for _, e := range f.emails {
					c.Emails = append(c.Emails, parseEmail(e))
				}
			}
			if flags.Changed("social") {
				c.SocialMedia = nil
				for _, s := range f.socials {
					sm, err := parseSocial(s)
					if err != nil {
						return err
					}
					c.SocialMedia = append(c.SocialMedia, sm)
				}
			}
			if flags.Changed("street") {
				c.Street = f.street
			}
			if flags.Changed("postal-code") {
				c.PostalCode = f.postalCode
			}
			if flags.Changed("city") {
				c.City = f.city
			}
			if flags.Changed("country") {
				c.Country = f.country
			}
			if flags.Changed("company") {
				c.Company = f.company
			}
			if flags.Changed("title") {
				c.Title = f.title
			}
			if flags.Changed("birthday") {
				c.Birthday = f.birthday
			}
			if flags.Changed("notes") {
				c.Notes = f.notes
			}
			if flags.Changed("favorite") {
				c.IsFavorite = f.favorite
			}
			if flags.Changed("tag") {
				c.Tags = f.tags
			}
			for _, t := range addTags {
				if !c.HasTag(t) {
					c.Tags = append(c.Tags, t)
				}
			}
			if len(removeTags) > 0 {
				c.Tags = withoutTags(c.Tags, removeTags)
			}

			if err := m.UpdateContact(c); err != nil {
				return err
			}
			if err := m.Save(ctx); err != nil {
				return err
			}
			successf("Updated %s", c.Name)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringArrayVar(&addTags, "add-tag", nil, "add a tag, repeatable")
	cmd.Flags().StringArrayVar(&removeTags, "remove-tag", nil, "remove a tag, repeatable")
	return cmd
}

func withoutTags(tags, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, t := range remove {
		drop[t] = true
	}
	var out []string
	for _, t := range tags {
		if !drop[t] {
			out = append(out, t)
		}
	}
	return out
}
