// Package cli wires the cobra command tree for the kontaktvault binary.
// Commands open the encrypted database, perform one operation and close
// it again; there is no long-lived session.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"kontaktvault/internal/database"
	"kontaktvault/internal/logging"
	"kontaktvault/internal/models"
	"kontaktvault/internal/store"
)

const (
	defaultDirName = ".kontaktvault"
	defaultDBName  = "contacts.kvdb"
)

var (
	dbPath       string
	backupDir    string
	passwordFlag string
	verbose      bool

	log logging.Logger = logging.NewNopLogger()
)

func Execute() error {
	root := &cobra.Command{
		Use:           "kontaktvault",
		Short:         "Encrypted personal contact register",
		Long:          "kontaktvault keeps your contacts in a single password-protected file.\nNothing leaves your machine.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dbPath = filepath.Join(home, defaultDirName, defaultDBName)
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log = logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default ~/.kontaktvault/contacts.kvdb)")
	root.PersistentFlags().StringVar(&backupDir, "backup-dir", "", "backup directory (default: backups next to the database)")
	root.PersistentFlags().StringVarP(&passwordFlag, "password", "p", "", "database password (prompted when omitted)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		initCmd(),
		addCmd(),
		listCmd(),
		showCmd(),
		updateCmd(),
		deleteCmd(),
		exportCmd(),
		importCmd(),
		backupCmd(),
		checkCmd(),
	)

	err := root.Execute()
	if err != nil {
		failf("%v", err)
	}
	return err
}

// resolvePassword returns the --password flag value or prompts for one.
func resolvePassword(prompt string) (string, error) {
	if passwordFlag != "" {
		return passwordFlag, nil
	}
	return promptPassword(prompt)
}

// openDatabase unlocks the configured database file. Key derivation takes
// a moment, so a spinner runs while it happens.
func openDatabase(ctx context.Context) (*database.Manager, error) {
	password, err := resolvePassword("Password: ")
	if err != nil {
		return nil, err
	}

	m := database.NewManager(log)
	stop := startSpinner("Unlocking database...")
	err = m.Open(ctx, dbPath, password)
	stop()
	if err != nil {
		return nil, err
	}
	return m, nil
}

// resolveContact finds one contact by full id, unique id prefix or unique
// case-insensitive name.
func resolveContact(m *database.Manager, arg string) (models.Contact, error) {
	if c, err := m.Contact(arg); err == nil {
		return c, nil
	}

	var matches []models.Contact
	for _, c := range m.Contacts(store.Filter{}) {
		if strings.HasPrefix(c.ID, arg) || strings.EqualFold(c.Name, arg) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Contact{}, fmt.Errorf("no contact matches %q", arg)
	default:
		return models.Contact{}, fmt.Errorf("%q matches %d contacts, use the id", arg, len(matches))
	}
}
