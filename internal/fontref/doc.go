// Package fontref finds font family names referenced by a presentation.
//
// Two ReferenceFinder implementations exist. OOXMLFinder walks the slide
// and theme XML of a PowerPoint archive and collects every typeface
// attribute. HeuristicFinder scans the binary Index files of a Keynote
// document for text that looks like a font name; it is a best-effort
// fallback with no guarantee on recall or precision, and substitutes a
// list of common presentation fonts when it finds nothing.
package fontref
