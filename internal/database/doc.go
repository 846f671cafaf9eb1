// Package database provides the SQLite extraction history for deckkit.
//
// Every saved extraction becomes one row in runs, holding the counts for
// quick listing and the full result as JSON, plus one row per embedded
// font in embedded_fonts keyed by its SHA3-256 digest. The digest index
// answers "which decks embed this font file".
//
// The driver is modernc.org/sqlite, a CGO-free SQLite, and the database
// is a single file in the XDG data directory.
package database
