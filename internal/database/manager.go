// Package database orchestrates the encrypted contact database on disk:
// create, open, save, backup, restore and close. It owns the lifecycle of
// the crypto engine and the in-memory store.
package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"kontaktvault/internal/common"
	"kontaktvault/internal/cryptox"
	"kontaktvault/internal/filex"
	"kontaktvault/internal/logging"
	"kontaktvault/internal/models"
	"kontaktvault/internal/passx"
	"kontaktvault/internal/store"
)

// Manager owns one encrypted database file. Lifecycle is Closed → Open →
// Closed; Open is not re-entrant. It assumes exclusive access to the file
// and is not safe for concurrent use; callers must serialize access.
type Manager struct {
	crypto   *cryptox.Engine
	store    *store.Store
	dbPath   string
	modified bool
	log      logging.Logger
}

func NewManager(log logging.Logger) *Manager {
	return &Manager{
		crypto: cryptox.NewEngine(),
		log:    log,
	}
}

// IsOpen reports whether a database is currently open.
func (m *Manager) IsOpen() bool { return m.store != nil && m.crypto.IsInitialized() }

// Path returns the primary database file path, or "" when closed.
func (m *Manager) Path() string { return m.dbPath }

// IsModified reports whether there are unsaved mutations.
func (m *Manager) IsModified() bool { return m.modified }

// Create builds a new encrypted database at dbPath with an empty contact
// store and performs the initial save. A failure leaves no partially
// written primary file and no key material in memory.
func (m *Manager) Create(ctx context.Context, dbPath, backupPath, password string) error {
	if m.IsOpen() {
		return common.ErrAlreadyOpen
	}
	if err := passx.Validate(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := filex.EnsureDir(dir); err != nil {
			return err
		}
	}
	if backupPath != "" {
		if err := filex.EnsureDir(backupPath); err != nil {
			return err
		}
	}

	if _, err := m.crypto.InitializeNew(password); err != nil {
		return err
	}

	st := store.New(models.NewMetadata(backupPath))
	token, err := m.crypto.CreateVerificationToken()
	if err != nil {
		m.crypto.Clear()
		return fmt.Errorf("create verification token: %w", err)
	}
	st.Verification = token

	m.store = st
	m.dbPath = dbPath

	if err := m.Save(ctx); err != nil {
		m.reset()
		return err
	}

	m.log.Info(ctx, "database created", "path", dbPath)
	return nil
}

// Open reads and decrypts an existing database. A wrong password and a
// corrupted file surface as the same common.ErrAuthentication; malformed
// envelopes (truncated file, unknown version) surface distinctly. The
// verification token is rechecked as a second, independent confirmation,
// and key material is wiped on every failure path.
func (m *Manager) Open(ctx context.Context, dbPath, password string) error {
	if m.IsOpen() {
		return common.ErrAlreadyOpen
	}

	blob, err := os.ReadFile(dbPath)
	if err != nil {
		return fmt.Errorf("read database: %w", err)
	}

	plaintext, err := m.crypto.DecryptEnvelope(blob, password)
	if err != nil {
		m.crypto.Clear()
		return err
	}

	st, err := store.Decode(plaintext)
	if err != nil {
		// Decryption succeeded but the payload is not our document.
		m.crypto.Clear()
		return common.ErrAuthentication
	}

	if len(st.Verification) > 0 && !m.crypto.VerifyPassword(st.Verification) {
		m.crypto.Clear()
		return common.ErrAuthentication
	}

	m.store = st
	m.dbPath = dbPath
	m.modified = false

	m.log.Info(ctx, "database opened", "path", dbPath, "contacts", st.Len())
	return nil
}

// Save serializes and encrypts the store, writes it to a temporary
// sibling file, then swaps it into place:
//
//  1. rename primary → primary.bak
//  2. rename temp → primary
//  3. delete primary.bak
//
// If step 2 fails the .bak file is renamed back, so the previous good
// file survives any failure during replacement.
func (m *Manager) Save(ctx context.Context) error {
	if !m.IsOpen() {
		return common.ErrNotOpen
	}

	plaintext, err := m.store.Encode()
	if err != nil {
		return err
	}
	blob, err := m.crypto.EncryptEnvelope(plaintext)
	if err != nil {
		return fmt.Errorf("encrypt database: %w", err)
	}

	tmpPath := m.dbPath + ".tmp"
	if err := filex.WriteFileSync(tmpPath, blob, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		bakPath := m.dbPath + ".bak"
		if err := os.Rename(m.dbPath, bakPath); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("stash previous database: %w", err)
		}
		if err := os.Rename(tmpPath, m.dbPath); err != nil {
			if rerr := os.Rename(bakPath, m.dbPath); rerr != nil {
				m.log.Error(ctx, "failed to restore previous database", "path", bakPath, "error", rerr)
			}
			os.Remove(tmpPath)
			return fmt.Errorf("replace database: %w", err)
		}
		if err := os.Remove(bakPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			m.log.Warn(ctx, "could not remove stale .bak file", "path", bakPath, "error", err)
		}
	} else {
		if err := os.Rename(tmpPath, m.dbPath); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("replace database: %w", err)
		}
	}

	m.modified = false
	m.log.Debug(ctx, "database saved", "path", m.dbPath, "bytes", len(blob))
	return nil
}

// Close saves pending changes, optionally creates a backup, wipes key
// material and drops the in-memory store.
//
// A backup is created only when autoBackup is requested here and enabled
// in the database metadata. Backup failures are logged, not fatal: the
// data is already saved at that point.
func (m *Manager) Close(ctx context.Context, autoBackup bool) error {
	if !m.IsOpen() {
		return common.ErrNotOpen
	}

	if m.modified {
		if err := m.Save(ctx); err != nil {
			return err
		}
	}

	if autoBackup && m.store.Metadata.AutoBackup {
		if _, err := m.CreateBackup(ctx, ""); err != nil {
			m.log.Warn(ctx, "auto-backup on close failed", "error", err)
		}
	}

	m.reset()
	m.log.Info(ctx, "database closed")
	return nil
}

func (m *Manager) reset() {
	m.crypto.Clear()
	m.store = nil
	m.dbPath = ""
	m.modified = false
}
