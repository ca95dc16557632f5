package models

// DatabaseVersion is the payload format version carried in metadata,
// separate from the envelope's version byte.
const DatabaseVersion = "1.0"

// Metadata describes the database itself. Language is carried as data for
// presentation layers; the core attaches no behavior to it.
type Metadata struct {
	Version    string `json:"version"`
	CreatedAt  string `json:"created_at"`
	BackupPath string `json:"backup_path"`
	AutoBackup bool   `json:"auto_backup"`
	Language   string `json:"language"`
}

// NewMetadata returns metadata for a freshly created database with
// auto-backup enabled.
func NewMetadata(backupPath string) Metadata {
	return Metadata{
		Version:    DatabaseVersion,
		CreatedAt:  Now(),
		BackupPath: backupPath,
		AutoBackup: true,
		Language:   "en",
	}
}
