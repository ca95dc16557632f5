package cli

import (
	"github.com/spf13/cobra"

	"kontaktvault/internal/csvx"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import contacts from a CSV file",
		Long:  "Accepts this tool's own exports as well as Outlook-style CSV files.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			res, err := csvx.Import(args[0])
			if err != nil {
				return err
			}

			m, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer m.Close(ctx, true)

			n, err := m.ImportContacts(res.Contacts)
			if err != nil {
				return err
			}
			if err := m.Save(ctx); err != nil {
				return err
			}

			for _, w := range res.Warnings {
				warnf("skipped %s", w)
			}
			successf("Imported %d contact(s) from %s", n, args[0])
			return nil
		},
	}
}
