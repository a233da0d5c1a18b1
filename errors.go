package tqvault

import "errors"

var (
	ErrFormat         = errors.New("tqvault: invalid save format")
	ErrRegionNotFound = errors.New("tqvault: region not found")
	ErrLimitExceeded  = errors.New("tqvault: limit exceeded")
	ErrBadIndex       = errors.New("tqvault: sack index out of range")
	ErrCopyDenied     = errors.New("tqvault: sack copy denied")
	ErrNilDatabase    = errors.New("tqvault: item database is nil")
	ErrInvalidBackup  = errors.New("tqvault: invalid backup file")

	// ErrDiagnostic tags advisory failures from diagnostic export. They are
	// reported on SaveFile.Warnings and never abort a load.
	ErrDiagnostic = errors.New("tqvault: diagnostic export failed")
)
