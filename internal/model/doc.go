// Package model defines the core data structures used throughout deckkit.
//
// This package contains the following main types:
//   - Extraction / ExtractionResult: fonts found in one presentation
//   - EmbeddedFont: metadata of a font binary copied out of a container
//   - Category: the system / commercial / free classification buckets
//   - FontRepository: static search-link templates for font sources
//   - HuntResult: outcome of hunting missing fonts online
//   - ConversionResult: outcome of converting one PDF into a PPTX deck
//
// Models are kept in their own package because the extractor, hunter,
// report writers, database and web server all exchange them. They are
// serializable to JSON for CLI output, the web API and history storage.
package model
