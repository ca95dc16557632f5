package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"kontaktvault/internal/common"
	"kontaktvault/internal/filex"
)

const (
	// BackupSuffix marks backup files created by the manager.
	BackupSuffix = ".backup"

	// BackupKeepCount is how many backups pruning retains per directory,
	// most recently modified first.
	BackupKeepCount = 10

	backupTimestampFormat = "20060102_150405"
)

// BackupInfo describes one backup file on disk.
type BackupInfo struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// CreateBackup saves the database and copies the live file into the
// backup directory as <stem>_<YYYYMMDD_HHMMSS>.backup. The directory is
// resolved from the argument, the stored metadata path, or a "backups"
// directory beside the primary file, in that order. Older backups beyond
// BackupKeepCount are pruned best-effort.
func (m *Manager) CreateBackup(ctx context.Context, backupDir string) (string, error) {
	if !m.IsOpen() {
		return "", common.ErrNotOpen
	}

	dir := backupDir
	if dir == "" {
		dir = m.store.Metadata.BackupPath
	}
	if dir == "" {
		dir = filepath.Join(filepath.Dir(m.dbPath), "backups")
	}
	if err := filex.EnsureDir(dir); err != nil {
		return "", err
	}

	// Save first so the backup carries the latest data.
	if err := m.Save(ctx); err != nil {
		return "", err
	}

	stem := strings.TrimSuffix(filepath.Base(m.dbPath), filepath.Ext(m.dbPath))
	name := fmt.Sprintf("%s_%s%s", stem, time.Now().Format(backupTimestampFormat), BackupSuffix)
	target := filepath.Join(dir, name)

	if err := filex.CopyFile(m.dbPath, target); err != nil {
		return "", fmt.Errorf("copy backup: %w", err)
	}

	m.pruneBackups(ctx, dir)

	m.log.Info(ctx, "backup created", "path", target)
	return target, nil
}

// RestoreBackup loads a backup file into memory through the same
// decryption and verification path as Open, replacing any current state.
// The primary file on disk is untouched; when a database was open, the
// manager keeps pointing at its path and is marked modified, so a
// subsequent Save makes the restored data durable as the primary.
func (m *Manager) RestoreBackup(ctx context.Context, backupFile, password string) error {
	if _, err := os.Stat(backupFile); err != nil {
		return fmt.Errorf("backup file: %w", err)
	}

	primary := m.dbPath
	if m.IsOpen() {
		// Restoring deliberately discards unsaved in-memory state.
		m.reset()
	}

	if err := m.Open(ctx, backupFile, password); err != nil {
		return err
	}

	if primary != "" {
		m.dbPath = primary
		m.modified = true
	}

	m.log.Info(ctx, "backup restored", "backup", backupFile)
	return nil
}

// ListBackups enumerates backup files under the metadata backup
// directory, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if !m.IsOpen() {
		return nil, common.ErrNotOpen
	}

	dir := m.store.Metadata.BackupPath
	if dir == "" {
		return nil, nil
	}

	backups, err := listBackupDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return backups, nil
}

// pruneBackups removes backups beyond BackupKeepCount, keeping the most
// recently modified. Failures are logged, never fatal.
func (m *Manager) pruneBackups(ctx context.Context, dir string) {
	backups, err := listBackupDir(dir)
	if err != nil {
		m.log.Warn(ctx, "could not prune old backups", "dir", dir, "error", err)
		return
	}
	if len(backups) <= BackupKeepCount {
		return
	}
	for _, old := range backups[BackupKeepCount:] {
		if err := os.Remove(old.Path); err != nil {
			m.log.Warn(ctx, "could not remove old backup", "path", old.Path, "error", err)
			continue
		}
		m.log.Debug(ctx, "old backup removed", "path", old.Path)
	}
}

func listBackupDir(dir string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var backups []BackupInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), BackupSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:    filepath.Join(dir, e.Name()),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ModTime.After(backups[j].ModTime)
	})
	return backups, nil
}

// FormatBackupSize renders a byte count the way the backup list shows it.
func FormatBackupSize(size int64) string {
	kb := float64(size) / 1024
	if kb < 1024 {
		return fmt.Sprintf("%.1f KB", kb)
	}
	return fmt.Sprintf("%.1f MB", kb/1024)
}

// FormatBackupAge renders how long ago a backup was taken, relative to now.
func FormatBackupAge(modTime, now time.Time) string {
	d := now.Sub(modTime)
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "yesterday"
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%d weeks ago", int(d.Hours()/(24*7)))
	default:
		return modTime.Format("2006-01-02")
	}
}
