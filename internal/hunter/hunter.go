package hunter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nao1215/deckkit/internal/catalog"
	"github.com/nao1215/deckkit/internal/classify"
	"github.com/nao1215/deckkit/internal/model"
	"github.com/nao1215/deckkit/internal/report"
)

const (
	// DefaultOutputDir is where project folders are created by default.
	DefaultOutputDir = "hunted_fonts"

	// DefaultProject is the project folder name used when none is given.
	DefaultProject = "fonts"

	// DownloadsDir holds automatically downloaded font files.
	DownloadsDir = "fonts_downloaded"
)

// Catalog is the part of the Google Fonts client the hunter needs.
// *catalog.Client implements it.
type Catalog interface {
	Enabled() bool
	Matches(ctx context.Context, name string) []catalog.Family
	Download(ctx context.Context, fileURL string) ([]byte, error)
}

// ProgressFunc is called before each name is looked up. index starts at 1.
type ProgressFunc func(index, total int, name string)

// Hunter finds sources for font names. A Hunter keeps the catalog it was
// given, so the family list is fetched at most once per Hunter.
type Hunter struct {
	outputDir  string
	catalog    Catalog
	classifier *classify.Classifier
	logger     *slog.Logger
	progress   ProgressFunc
}

// Option configures a Hunter.
type Option func(*Hunter)

// WithCatalog sets the Google Fonts catalog. Without one no font is
// downloaded automatically.
func WithCatalog(c Catalog) Option {
	return func(h *Hunter) {
		h.catalog = c
	}
}

// WithClassifier replaces the default classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(h *Hunter) {
		h.classifier = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hunter) {
		h.logger = logger
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(h *Hunter) {
		h.progress = fn
	}
}

// New creates a Hunter writing project folders below outputDir.
func New(outputDir string, opts ...Option) *Hunter {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	h := &Hunter{outputDir: outputDir}
	for _, opt := range opts {
		opt(h)
	}
	if h.classifier == nil {
		h.classifier = classify.New()
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h
}

// Hunt looks up every name and writes the acquisition report into the
// project folder. Names are looked up in the given order; blank and
// repeated names are skipped.
//
// When ctx ends between two names the partial result is returned together
// with ctx.Err() and no report is written.
func (h *Hunter) Hunt(ctx context.Context, names []string, project string) (*model.HuntResult, error) {
	projectDir := filepath.Join(h.outputDir, safeName(project, DefaultProject))
	downloads := filepath.Join(projectDir, DownloadsDir)
	if err := os.MkdirAll(downloads, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create project folder: %w", err)
	}

	result := model.NewHuntResult(projectDir)
	names = uniqueNames(names)

	h.logger.Info("hunting fonts", "count", len(names), "project", projectDir,
		"google_fonts", h.catalog != nil && h.catalog.Enabled())

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			h.logger.Warn("font hunt cancelled", "remaining", len(names)-i)
			return result, err
		}
		if h.progress != nil {
			h.progress(i+1, len(names), name)
		}
		h.huntOne(ctx, name, downloads, result)
	}

	reportPath := filepath.Join(projectDir, report.HuntReportFileName)
	if err := report.SaveHuntHTML(reportPath, result); err != nil {
		return result, err
	}
	result.ReportPath = reportPath

	h.logger.Info("font hunt complete",
		"downloaded", len(result.Downloaded),
		"free", len(result.FreeFound),
		"commercial", len(result.Commercial),
		"report", reportPath)
	return result, nil
}

func (h *Hunter) huntOne(ctx context.Context, name, downloads string, result *model.HuntResult) {
	if d, ok := h.download(ctx, name, downloads); ok {
		result.Downloaded = append(result.Downloaded, d)
		h.logger.Debug("downloaded from google fonts", "font", name, "family", d.FontName)
		return
	}
	if lead, ok := lookupKnownFree(name); ok {
		result.FreeFound = append(result.FreeFound, lead)
		h.logger.Debug("found on free repository", "font", name, "repository", lead.Repository)
		return
	}
	if h.classifier.IsCommercial(name) {
		result.Commercial = append(result.Commercial, commercialEntry(name))
		h.logger.Debug("commercial font", "font", name)
		return
	}
	result.FreeFound = append(result.FreeFound, searchLead(name))
	h.logger.Debug("no direct source, search links added", "font", name)
}

// download tries each matching catalog family in order until one file
// was fetched and written.
func (h *Hunter) download(ctx context.Context, name, dir string) (model.DownloadedFont, bool) {
	if h.catalog == nil || !h.catalog.Enabled() {
		return model.DownloadedFont{}, false
	}
	for _, family := range h.catalog.Matches(ctx, name) {
		variant, ok := family.Preferred()
		if !ok {
			continue
		}
		data, err := h.catalog.Download(ctx, variant.URL)
		if err != nil {
			h.logger.Warn("font download failed", "family", family.Family, "error", err)
			continue
		}
		path := filepath.Join(dir, SafeName(family.Family)+".ttf")
		if err := os.WriteFile(path, data, 0o600); err != nil {
			h.logger.Warn("could not save font", "family", family.Family, "error", err)
			continue
		}
		return model.DownloadedFont{
			FontName:     family.Family,
			SearchedName: name,
			Repository:   model.RepositoryGoogleFonts,
			FilePath:     path,
			URL:          catalog.SpecimenURL(family.Family),
			Variants:     family.VariantNames(),
			Downloaded:   true,
		}, true
	}
	return model.DownloadedFont{}, false
}

var unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_ -]`)

// SafeName turns a family name into a file name: characters other than
// letters, digits, underscores, hyphens and spaces are dropped, the result
// is trimmed and every inner space becomes an underscore, so "A  B" is
// "A__B". It returns "font" when nothing is left.
func SafeName(name string) string {
	return safeName(name, "font")
}

func safeName(name, fallback string) string {
	s := strings.TrimSpace(unsafeChars.ReplaceAllString(name, ""))
	s = strings.ReplaceAll(s, " ", "_")
	if s == "" {
		return fallback
	}
	return s
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// IsCancelled reports whether err came from a cancelled hunt.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
