// Package common defines shared constants and sentinel errors used across
// KontaktVault layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrAuthentication covers both a wrong password and a tampered or
	// corrupted database file. The two cases are deliberately reported
	// identically so the error is not a password-correctness oracle.
	ErrAuthentication = errors.New("wrong password or corrupted database")

	// Lifecycle errors (contract violations by the caller).
	ErrNotOpen     = errors.New("no database is open")
	ErrAlreadyOpen = errors.New("a database is already open")

	// Record-level errors.
	ErrNotFound = errors.New("contact not found")
)
