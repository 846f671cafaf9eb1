// Package main provides the entry point for the deckkit CLI.
//
// deckkit extracts embedded and referenced fonts from PowerPoint and
// Keynote presentations, classifies them, hunts for the missing ones and
// converts PDFs into image-based PowerPoint decks.
//
// Usage:
//
//	deckkit extract-fonts <file-or-dir>
//	deckkit hunt-fonts <file-or-dir> -p <project>
//	deckkit pdf-to-pptx <pdf>
//
// See --help for all available options.
package main

func main() {
	Execute()
}
