package fontref

import (
	"context"

	"github.com/nao1215/deckkit/internal/archive"
	"github.com/nao1215/deckkit/internal/model"
)

// ReferenceFinder collects referenced font family names from a container.
// Callers do not know whether a structured parse or a heuristic was used.
type ReferenceFinder interface {
	// Name identifies the finder in logs.
	Name() string

	// FindReferences returns the referenced names. Unreadable documents
	// are logged and skipped; an error is returned only when ctx is done.
	FindReferences(ctx context.Context, c archive.Container) (model.FontSet, error)
}

// Placeholders are theme-alias tokens meaning "use the theme's major or
// minor font" for the latin, east asian and complex script slots.
var Placeholders = []string{"+mj-lt", "+mn-lt", "+mj-ea", "+mn-ea", "+mj-cs", "+mn-cs"}

// RemovePlaceholders drops the empty name and every placeholder token.
func RemovePlaceholders(fonts model.FontSet) {
	fonts.Remove("")
	fonts.Remove(Placeholders...)
}
