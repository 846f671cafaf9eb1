package pdfconv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultPdftoppm is the program name looked up in PATH.
const DefaultPdftoppm = "pdftoppm"

// ErrRasterizerMissing is returned when the rasterizer program is not
// installed.
var ErrRasterizerMissing = errors.New("pdf rasterizer not found")

// Rasterizer renders every page of a PDF to an image file in outDir and
// returns the files in page order.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath, outDir string, dpi int) ([]string, error)
}

// Pdftoppm runs poppler's pdftoppm.
type Pdftoppm struct {
	// Path is the program to run. Empty means DefaultPdftoppm.
	Path string
}

var pageFile = regexp.MustCompile(`^page-(\d+)\.png$`)

// Rasterize runs `pdftoppm -r DPI -png in outDir/page`, which writes
// page-N.png files. pdftoppm pads N with zeros for longer documents; the
// files are ordered by number.
func (p Pdftoppm) Rasterize(ctx context.Context, pdfPath, outDir string, dpi int) ([]string, error) {
	bin := p.Path
	if bin == "" {
		bin = DefaultPdftoppm
	}
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (install poppler-utils): %w", ErrRasterizerMissing, bin, err)
	}

	cmd := exec.CommandContext(ctx, resolved, //nolint:gosec // program path is configuration
		"-r", strconv.Itoa(dpi),
		"-png",
		pdfPath,
		filepath.Join(outDir, "page"),
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("pdftoppm failed: %w", err)
		}
		return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, msg)
	}
	return PageFiles(outDir)
}

// PageFiles returns the page-N.png files in dir sorted by page number.
func PageFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil {
		return nil, err
	}
	type page struct {
		n    int
		path string
	}
	pages := make([]page, 0, len(matches))
	for _, m := range matches {
		sub := pageFile.FindStringSubmatch(filepath.Base(m))
		if sub == nil {
			continue
		}
		n, err := strconv.Atoi(sub[1])
		if err != nil {
			continue
		}
		pages = append(pages, page{n: n, path: m})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].n < pages[j].n })

	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.path
	}
	return out, nil
}
