package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"kontaktvault/internal/database"
	"kontaktvault/internal/filex"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage database backups",
	}
	cmd.AddCommand(backupCreateCmd(), backupListCmd(), backupRestoreCmd())
	return cmd
}

func backupCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a timestamped backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer m.Close(ctx, false)

			path, err := m.CreateBackup(ctx, backupDir)
			if err != nil {
				return err
			}
			successf("Backup written to %s", path)
			return nil
		},
	}
}

func backupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List existing backups, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer m.Close(ctx, false)

			backups, err := m.ListBackups()
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				notef("No backups yet")
				return nil
			}

			now := time.Now()
			for _, b := range backups {
				fmt.Printf("%-45s %9s  %s\n",
					filepath.Base(b.Path),
					database.FormatBackupSize(b.Size),
					database.FormatBackupAge(b.ModTime, now))
			}
			return nil
		},
	}
}

func backupRestoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore the database from a backup file",
		Long:  "Replaces the contents of the database with the backup. The current state is lost.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backupFile := args[0]

			if !yes {
				answer, err := promptLine(fmt.Sprintf("Replace the database with %s? [y/N] ", filepath.Base(backupFile)))
				if err != nil {
					return err
				}
				if answer != "y" && answer != "yes" {
					notef("Aborted")
					return nil
				}
			}

			password, err := resolvePassword("Password: ")
			if err != nil {
				return err
			}

			m := database.NewManager(log)
			stop := startSpinner("Restoring backup...")
			defer stop()

			if err := m.Open(ctx, dbPath, password); err == nil {
				// Normal path: swap the backup contents in, then persist.
				if err := m.RestoreBackup(ctx, backupFile, password); err != nil {
					return err
				}
				if err := m.Save(ctx); err != nil {
					return err
				}
				if err := m.Close(ctx, false); err != nil {
					return err
				}
			} else {
				// The primary would not open (corrupted or missing). Verify
				// the backup decrypts, then copy it over the primary.
				if err := m.RestoreBackup(ctx, backupFile, password); err != nil {
					return err
				}
				if err := m.Close(ctx, false); err != nil {
					return err
				}
				if dir := filepath.Dir(dbPath); dir != "." {
					if err := filex.EnsureDir(dir); err != nil {
						return err
					}
				}
				if err := filex.CopyFile(backupFile, dbPath); err != nil {
					return err
				}
			}

			stop()
			successf("Restored %s into %s", filepath.Base(backupFile), dbPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
