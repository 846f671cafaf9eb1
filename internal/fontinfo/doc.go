// Package fontinfo inspects font binaries copied out of presentations.
//
// Inspect records a SHA3-256 digest and, when the file is a readable
// TrueType or OpenType font, the family, subfamily, PostScript name, weight
// and style from its tables. PowerPoint usually embeds obfuscated .fntdata
// files that no sfnt parser accepts; for those the metadata is guessed from
// the file name. Inspection never fails because a font could not be parsed.
//
// WriteStylesheet turns the inspected fonts into a fonts.css file with one
// @font-face rule per font.
package fontinfo
