package cli

import (
	"github.com/spf13/cobra"

	"kontaktvault/internal/csvx"
	"kontaktvault/internal/store"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export all contacts to a CSV file",
		Long:  "The export is plaintext. Treat the file with the same care as the password.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer m.Close(ctx, false)

			contacts := m.Contacts(store.Filter{SortBy: store.SortByName})
			if err := csvx.Export(contacts, args[0]); err != nil {
				return err
			}
			successf("Exported %d contact(s) to %s", len(contacts), args[0])
			warnf("The CSV file is not encrypted")
			return nil
		},
	}
}
