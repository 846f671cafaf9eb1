package fontref

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/nao1215/deckkit/internal/archive"
	"github.com/nao1215/deckkit/internal/model"
)

// fontLike matches a letter followed by 2 to 30 letters, digits, spaces,
// hyphens or periods.
var fontLike = regexp.MustCompile(`\b[A-Za-z][A-Za-z0-9\s\-\.]{2,30}\b`)

var (
	allDigits = regexp.MustCompile(`^\d+$`)
	acronym   = regexp.MustCompile(`^[A-Z]{2,}$`)
)

// stopWords are frequent English words the regex would otherwise report.
var stopWords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`the and for with this that from have will been they said each
		which their time would there could other after first well also new want because any these
		give day may most over think too just like back here much before right good very make into
		more only some them than then its who oil now find long down did get has him his how man
		old see two way boy let put say she use`) {
		stopWords[w] = true
	}
}

// CommonPresentationFonts is substituted when the heuristic finds nothing,
// so a Keynote document never yields an empty reference set.
var CommonPresentationFonts = []string{
	"Arial", "Helvetica", "Times New Roman", "Georgia", "Calibri",
	"Verdana", "Tahoma", "Trebuchet MS", "Palatino", "Garamond",
	"游ゴシック", "Yu Gothic", "YuGothic", "Hiragino Sans",
	"PingFang SC", "STSong", "Montserrat", "Open Sans", "Lato",
	"Roboto", "DM Sans", "Source Sans Pro",
}

// IsIndexFile selects index files in a directory package: any file whose
// base name is exactly "Index".
func IsIndexFile(name string) bool {
	return path.Base(name) == "Index"
}

// IsIndexEntry selects index entries in a zipped document: any entry whose
// name ends in "Index".
func IsIndexEntry(name string) bool {
	return strings.HasSuffix(name, "Index")
}

// HeuristicFinder guesses font names from undocumented binary content.
type HeuristicFinder struct {
	logger *slog.Logger
}

// NewHeuristicFinder creates a finder logging skipped entries to logger.
func NewHeuristicFinder(logger *slog.Logger) *HeuristicFinder {
	if logger == nil {
		logger = slog.Default()
	}
	return &HeuristicFinder{logger: logger}
}

// Name implements ReferenceFinder.
func (f *HeuristicFinder) Name() string { return "heuristic" }

// FindReferences implements ReferenceFinder. The entries scanned depend on
// the container: Index files for directory packages, names ending in Index
// for zip archives, and the whole file for anything else.
func (f *HeuristicFinder) FindReferences(ctx context.Context, c archive.Container) (model.FontSet, error) {
	match := selectorFor(c)
	fonts := model.NewFontSet()

	for _, name := range c.Names() {
		if !match(name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := c.ReadEntry(name)
		if err != nil {
			f.logger.Debug("could not read index", "entry", name, "error", err)
			continue
		}
		found := NamesInBinary(data)
		f.logger.Debug("font-like names found", "entry", name, "count", len(found))
		fonts.AddAll(found)
	}

	if len(fonts) == 0 {
		f.logger.Debug("no font names found, using common presentation fonts", "path", c.Path())
		return model.NewFontSet(CommonPresentationFonts...), nil
	}
	return fonts, nil
}

func selectorFor(c archive.Container) archive.Selector {
	switch c.(type) {
	case *archive.Dir:
		return IsIndexFile
	case *archive.Reader:
		return IsIndexEntry
	default:
		return func(string) bool { return true }
	}
}

// NamesInBinary decodes raw bytes as text and returns font-like names.
func NamesInBinary(data []byte) model.FontSet {
	return NamesInText(decode(data))
}

// decode tries UTF-8, UTF-16 and Latin-1 in that order and returns the
// first successful decoding. UTF-8 must be valid and UTF-16 needs a byte
// order mark; Latin-1 accepts any input.
func decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoders := []encoding.Encoding{
		unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM),
		charmap.ISO8859_1,
	}
	for _, enc := range decoders {
		out, err := enc.NewDecoder().Bytes(data)
		if err == nil {
			return string(out)
		}
	}
	return ""
}

// NamesInText applies the font-name pattern to text and filters out stop
// words, numbers and all-caps acronyms.
func NamesInText(text string) model.FontSet {
	fonts := model.NewFontSet()
	for _, candidate := range fontLike.FindAllString(text, -1) {
		candidate = strings.TrimSpace(candidate)
		if len(candidate) <= 2 {
			continue
		}
		if stopWords[strings.ToLower(candidate)] {
			continue
		}
		if allDigits.MatchString(candidate) || acronym.MatchString(candidate) {
			continue
		}
		fonts.Add(candidate)
	}
	return fonts
}
