package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	// dirPerm and filePerm are used for everything deckkit writes.
	dirPerm  = 0o750
	filePerm = 0o600
)

// Selector decides whether an entry is copied by CopyMatching.
type Selector func(name string) bool

// HasPrefix selects entries below an internal folder such as "ppt/fonts/".
func HasPrefix(prefix string) Selector {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix)
	}
}

// HasSuffix selects entries ending in one of suffixes. The comparison is
// case-sensitive; pass each spelling that should match.
func HasSuffix(suffixes ...string) Selector {
	return func(name string) bool {
		for _, s := range suffixes {
			if strings.HasSuffix(name, s) {
				return true
			}
		}
		return false
	}
}

// CheckExists returns an error wrapping both ErrNotFound and
// fs.ErrNotExist when path is missing.
func CheckExists(p string) error {
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: %w", ErrNotFound, p, fs.ErrNotExist)
		}
		return err
	}
	return nil
}

// Reader is an open zip container.
type Reader struct {
	path   string
	zr     *zip.ReadCloser
	files  map[string]*zip.File
	logger *slog.Logger
}

// Open opens the container at p.
// A missing path yields ErrNotFound without touching the file; a file that
// is not a zip archive yields ErrNotArchive.
func Open(p string, logger *slog.Logger) (*Reader, error) {
	if err := CheckExists(p); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotArchive, p, err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}
	return &Reader{path: p, zr: zr, files: files, logger: logger}, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.zr.Close()
}

// Path returns the container path.
func (r *Reader) Path() string {
	return r.path
}

// Names returns entry names in archive-listing order.
func (r *Reader) Names() []string {
	names := make([]string, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		names = append(names, f.Name)
	}
	return names
}

// Select returns the names of entries accepted by sel, in listing order.
func (r *Reader) Select(sel Selector) []string {
	var names []string
	for _, f := range r.zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if sel(f.Name) {
			names = append(names, f.Name)
		}
	}
	return names
}

// OpenEntry opens the named entry for reading.
func (r *Reader) OpenEntry(name string) (io.ReadCloser, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	return f.Open()
}

// ReadEntry returns the contents of the named entry.
func (r *Reader) ReadEntry(name string) ([]byte, error) {
	rc, err := r.OpenEntry(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// CopyMatching writes every entry accepted by sel into outDir, named by
// the entry's base name, and returns the written paths in listing order.
// Failures are logged and skipped, so the result may be partial.
func (r *Reader) CopyMatching(sel Selector, outDir string) []string {
	var written []string
	for _, name := range r.Select(sel) {
		dst, err := r.copyEntry(name, outDir)
		if err != nil {
			r.logger.Warn("skipping archive entry", "archive", r.path, "entry", name, "error", err)
			continue
		}
		written = append(written, dst)
	}
	return written
}

func (r *Reader) copyEntry(name, outDir string) (string, error) {
	base := path.Base(name)
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("entry %q has no file name", name)
	}

	src, err := r.OpenEntry(name)
	if err != nil {
		return "", err
	}
	defer src.Close()

	return writeFile(src, filepath.Join(outDir, base))
}

// CopyFile copies a regular file into outDir keeping its base name.
// Keynote directory packages use it for fonts stored under Data/.
func CopyFile(src, outDir string) (string, error) {
	in, err := os.Open(src) //nolint:gosec // path comes from walking the user's package
	if err != nil {
		return "", err
	}
	defer in.Close()

	return writeFile(in, filepath.Join(outDir, filepath.Base(src)))
}

func writeFile(src io.Reader, dst string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return "", fmt.Errorf("create output folder: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm) //nolint:gosec // dst is inside the output folder
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("copy %s: %w", filepath.Base(dst), err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dst, nil
}

// EnsureDir creates dir with deckkit's directory permissions.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, dirPerm)
}
