package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a contact",
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

			if !yes {
				answer, err := promptLine(fmt.Sprintf("Delete %q? [y/N] ", c.Name))
				if err != nil {
					return err
				}
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					notef("Aborted")
					return nil
				}
			}

			if err := m.DeleteContact(c.ID); err != nil {
				return err
			}
			if err := m.Save(ctx); err != nil {
				return err
			}
			successf("Deleted %s", c.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
