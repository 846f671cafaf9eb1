// Package pptx writes picture-only PowerPoint decks.
//
// A Deck is a list of pictures. Each becomes one blank 16:9 slide with the
// picture scaled to fit and centred. The package structure (content types,
// relationships, a single master with a blank layout and a theme) is
// generated; the static parts are embedded.
package pptx
