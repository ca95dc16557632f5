package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kontaktvault/internal/database"
	"kontaktvault/internal/passx"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a new encrypted contact database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if _, err := os.Stat(dbPath); err == nil {
				return fmt.Errorf("database already exists at %s", dbPath)
			}

			password := passwordFlag
			if password == "" {
				var err error
				password, err = promptNewPassword()
				if err != nil {
					return err
				}
			} else if err := passx.Validate(password); err != nil {
				return err
			}

			dir := backupDir
			if dir == "" {
				dir = filepath.Join(filepath.Dir(dbPath), "backups")
			}

			m := database.NewManager(log)
			stop := startSpinner("Deriving encryption key...")
			err := m.Create(ctx, dbPath, dir, password)
			stop()
			if err != nil {
				return err
			}
			defer m.Close(ctx, false)

			successf("Database created at %s", dbPath)
			notef("Backups will go to %s", dir)
			return nil
		},
	}
}
