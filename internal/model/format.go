package model

import (
	"path/filepath"
	"strings"
)

// Format identifies the container format of an input file.
type Format string

const (
	// FormatPPTX is an Office Open XML presentation (.pptx).
	FormatPPTX Format = "pptx"

	// FormatKeynote is an Apple Keynote document (.key or .keynote), either
	// a directory package or a zip archive.
	FormatKeynote Format = "keynote"

	// FormatPDF is a PDF document. It is converted, not font-extracted.
	FormatPDF Format = "pdf"
)

// DetectFormat maps the extension of path to a Format.
// The comparison is case-insensitive and ignores a trailing separator, so
// "Talk.key/" is a Keynote package. ok is false for other extensions.
func DetectFormat(path string) (format Format, ok bool) {
	switch strings.ToLower(filepath.Ext(filepath.Clean(path))) {
	case ".pptx":
		return FormatPPTX, true
	case ".key", ".keynote":
		return FormatKeynote, true
	case ".pdf":
		return FormatPDF, true
	default:
		return "", false
	}
}

// IsPresentation reports whether fonts can be extracted from the format.
func (f Format) IsPresentation() bool {
	return f == FormatPPTX || f == FormatKeynote
}

// Stem returns the base name of path without its extension. It names the
// per-input output folder.
func Stem(path string) string {
	base := filepath.Base(filepath.Clean(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
