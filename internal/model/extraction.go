package model

import (
	"slices"
	"time"
)

// EmbeddedFont describes a font binary copied out of a presentation.
type EmbeddedFont struct {
	// Path is the location of the copied file on disk.
	Path string `json:"path"`

	// FileName is the base name of the entry inside the container.
	FileName string `json:"file_name"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// SHA3 is the hex encoded SHA3-256 digest of the file contents.
	// Identical fonts embedded in different decks share a digest.
	SHA3 string `json:"sha3_256"`

	// Family is the font family name. It comes from the sfnt name table
	// when Parsed is true and from the file name otherwise.
	Family string `json:"family"`

	// Subfamily is the style name, e.g. "Bold Italic". Empty when unparsed.
	Subfamily string `json:"subfamily,omitempty"`

	// PostScriptName is the PostScript name. Empty when unparsed.
	PostScriptName string `json:"postscript_name,omitempty"`

	// Weight is a CSS font-weight value ("normal", "bold", "300", ...).
	Weight string `json:"weight"`

	// Style is a CSS font-style value ("normal" or "italic").
	Style string `json:"style"`

	// Parsed is true when the binary could be read as a TrueType or
	// OpenType font. PowerPoint's obfuscated .fntdata files are not.
	Parsed bool `json:"parsed"`
}

// Extraction is the mutable working state of one extraction run.
// Pipeline steps fill it in; Result freezes it into an ExtractionResult.
type Extraction struct {
	Source       string
	Format       Format
	OutputFolder string

	// EmbeddedFonts are written paths in archive-listing order.
	EmbeddedFonts []string

	// EmbeddedDetails has one entry per embedded font that was inspected.
	EmbeddedDetails []EmbeddedFont

	// References accumulates referenced family names across documents.
	References FontSet

	// Buckets holds the classifier output. It is empty until the
	// classification step ran.
	Buckets map[Category]FontSet

	// PerformedSteps names the pipeline steps that ran, in order.
	PerformedSteps []string

	// Cancelled is set when the context ended before every step ran.
	Cancelled bool
}

// NewExtraction creates an empty extraction for source.
func NewExtraction(source string, format Format, outputFolder string) *Extraction {
	return &Extraction{
		Source:       source,
		Format:       format,
		OutputFolder: outputFolder,
		References:   NewFontSet(),
		Buckets:      make(map[Category]FontSet, len(Categories)),
	}
}

// Result freezes the extraction into an ExtractionResult. Slices are
// copied, so later changes to e do not leak into the result.
func (e *Extraction) Result() *ExtractionResult {
	bucket := func(c Category) []string {
		if s, ok := e.Buckets[c]; ok {
			return s.Sorted()
		}
		return []string{}
	}

	embedded := make([]string, len(e.EmbeddedFonts))
	copy(embedded, e.EmbeddedFonts)

	return &ExtractionResult{
		Source:          e.Source,
		Format:          e.Format,
		EmbeddedFonts:   embedded,
		EmbeddedDetails: slices.Clone(e.EmbeddedDetails),
		ReferencedFonts: e.References.Sorted(),
		SystemFonts:     bucket(CategorySystem),
		CommercialFonts: bucket(CategoryCommercial),
		FreeFonts:       bucket(CategoryFree),
		OutputFolder:    e.OutputFolder,
		ExtractedAt:     time.Now().UTC(),
	}
}

// ExtractionResult is the outcome of extracting fonts from one input file.
// It is a snapshot: nothing in deckkit modifies a result after Result
// returned it.
type ExtractionResult struct {
	// Source is the input path as given by the caller.
	Source string `json:"source"`

	// Format is the detected container format.
	Format Format `json:"format"`

	// EmbeddedFonts lists the written font files in archive-listing order.
	EmbeddedFonts []string `json:"embedded_fonts"`

	// EmbeddedDetails has metadata for each embedded font.
	EmbeddedDetails []EmbeddedFont `json:"embedded_details,omitempty"`

	// ReferencedFonts lists family names used by the presentation, sorted.
	ReferencedFonts []string `json:"referenced_fonts"`

	// SystemFonts, CommercialFonts and FreeFonts partition ReferencedFonts.
	SystemFonts     []string `json:"system_fonts"`
	CommercialFonts []string `json:"commercial_fonts"`
	FreeFonts       []string `json:"free_fonts"`

	// OutputFolder is the per-input folder holding the embedded fonts.
	OutputFolder string `json:"output_folder"`

	// ExtractedAt is when the result was frozen.
	ExtractedAt time.Time `json:"extracted_at"`
}

// Bucket returns the sorted names of one category.
func (r *ExtractionResult) Bucket(c Category) []string {
	switch c {
	case CategorySystem:
		return r.SystemFonts
	case CategoryCommercial:
		return r.CommercialFonts
	case CategoryFree:
		return r.FreeFonts
	default:
		return nil
	}
}

// CategoryOf returns the bucket holding name.
func (r *ExtractionResult) CategoryOf(name string) (Category, bool) {
	for _, c := range Categories {
		if _, found := slices.BinarySearch(r.Bucket(c), name); found {
			return c, true
		}
	}
	return 0, false
}
