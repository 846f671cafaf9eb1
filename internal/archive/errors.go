package archive

import "errors"

var (
	// ErrNotFound is returned when the input path does not exist.
	// It is reported before any attempt to open the file.
	ErrNotFound = errors.New("input not found")

	// ErrNotArchive is returned when the input is not a readable zip archive.
	ErrNotArchive = errors.New("not a zip archive")

	// ErrEntryNotFound is returned by ReadEntry for unknown entry names.
	ErrEntryNotFound = errors.New("archive entry not found")
)
