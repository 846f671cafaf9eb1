package pdfconv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/nao1215/deckkit/internal/archive"
)

// ErrInvalidPDF is returned when a file cannot be read as a PDF.
var ErrInvalidPDF = errors.New("invalid pdf")

// Info is the document information and page count of a PDF.
type Info struct {
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Pages    int    `json:"pages"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Keywords string `json:"keywords,omitempty"`
	Creator  string `json:"creator,omitempty"`
	Producer string `json:"producer,omitempty"`
}

// ReadInfo opens path and reads its document information dictionary and
// page count.
func ReadInfo(path string) (info Info, err error) {
	if err := archive.CheckExists(path); err != nil {
		return Info{}, err
	}
	f, err := os.Open(path) //nolint:gosec // path is a user supplied input file
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return Info{}, err
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrInvalidPDF, filepath.Base(path), r)
		}
	}()

	r, err := pdf.NewReader(f, nil)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %s: %w", ErrInvalidPDF, filepath.Base(path), err)
	}

	pages, err := pagetree.NumPages(r)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %s: page tree: %w", ErrInvalidPDF, filepath.Base(path), err)
	}

	info = Info{Path: path, Size: fi.Size(), Pages: pages}
	if meta := r.GetMeta(); meta != nil && meta.Info != nil {
		info.Title = string(meta.Info.Title)
		info.Author = string(meta.Info.Author)
		info.Subject = string(meta.Info.Subject)
		info.Keywords = string(meta.Info.Keywords)
		info.Creator = string(meta.Info.Creator)
		info.Producer = string(meta.Info.Producer)
	}
	return info, nil
}
