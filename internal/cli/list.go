package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"kontaktvault/internal/store"
)

func listCmd() *cobra.Command {
	var (
		query     string
		tag       string
		favorites bool
		sortBy    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts, optionally filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			switch store.SortBy(sortBy) {
			case store.SortByName, store.SortByCompany, store.SortByUpdatedAt:
			default:
				return fmt.Errorf("unknown sort key %q (name, company, updated_at)", sortBy)
			}

			m, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer m.Close(ctx, false)

			contacts := m.Contacts(store.Filter{
				Query:         query,
				Tag:           tag,
				FavoritesOnly: favorites,
				SortBy:        store.SortBy(sortBy),
			})

			for _, c := range contacts {
				star := " "
				if c.IsFavorite {
					star = color.YellowString("★")
				}
				line := fmt.Sprintf("%s %s  %-25s  %-15s  %-25s", star, shortID(c.ID), c.Name, c.PrimaryPhone(), c.PrimaryEmail())
				if len(c.Tags) > 0 {
					line += "  " + color.CyanString("#"+strings.Join(c.Tags, " #"))
				}
				fmt.Println(line)
			}
			fmt.Printf("%d contact(s)\n", len(contacts))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "match name, phone, email, company, title or tag")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only contacts carrying this tag")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "only favorites")
	cmd.Flags().StringVar(&sortBy, "sort", string(store.SortByName), "sort key: name, company or updated_at")
	return cmd
}
