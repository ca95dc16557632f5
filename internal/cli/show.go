package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kontaktvault/internal/models"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show one contact in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer m.Close(ctx, false)

			c, err := resolveContact(m, args[0])
			if err != nil {
				return err
			}
			renderContact(os.Stdout, c)
			return nil
		},
	}
}

func renderContact(w io.Writer, c models.Contact) {
	title := color.New(color.Bold).Sprint(c.Name)
	if c.IsFavorite {
		title += " " + color.YellowString("★")
	}
	fmt.Fprintln(w, title)
	fmt.Fprintf(w, "  ID:        %s\n", c.ID)

	for _, p := range c.Phones {
		fmt.Fprintf(w, "  Phone:     %s (%s)\n", p.Number, p.Type)
	}
	for _, e := range c.Emails {
		fmt.Fprintf(w, "  Email:     %s (%s)\n", e.Address, e.Type)
	}

	if addr := formatAddress(c); addr != "" {
		fmt.Fprintf(w, "  Address:   %s\n", addr)
	}
	if c.Company != "" {
		work := c.Company
		if c.Title != "" {
			work = c.Title + ", " + work
		}
		fmt.Fprintf(w, "  Work:      %s\n", work)
	} else if c.Title != "" {
		fmt.Fprintf(w, "  Work:      %s\n", c.Title)
	}
	if c.Birthday != "" {
		fmt.Fprintf(w, "  Birthday:  %s\n", c.Birthday)
	}
	for _, sm := range c.SocialMedia {
		fmt.Fprintf(w, "  %-9s %s\n", capitalize(sm.Platform)+":", sm.ProfileURL())
	}
	if len(c.Tags) > 0 {
		fmt.Fprintf(w, "  Tags:      %s\n", color.CyanString(strings.Join(c.Tags, ", ")))
	}
	if c.Notes != "" {
		fmt.Fprintf(w, "  Notes:     %s\n", c.Notes)
	}
	fmt.Fprintf(w, "  Created:   %s\n", c.CreatedAt)
	fmt.Fprintf(w, "  Updated:   %s\n", c.UpdatedAt)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatAddress(c models.Contact) string {
	var parts []string
	if c.Street != "" {
		parts = append(parts, c.Street)
	}
	if c.PostalCode != "" || c.City != "" {
		parts = append(parts, strings.TrimSpace(c.PostalCode+" "+c.City))
	}
	if c.Country != "" {
		parts = append(parts, c.Country)
	}
	return strings.Join(parts, ", ")
}
