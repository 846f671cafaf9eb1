package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Container is the read surface shared by zip archives, directory
// packages and raw files. Entry names always use forward slashes.
type Container interface {
	// Path returns the container location on disk.
	Path() string

	// Names returns entry names in listing order.
	Names() []string

	// ReadEntry returns the contents of one entry.
	ReadEntry(name string) ([]byte, error)

	// CopyMatching copies selected entries into outDir by base name.
	// Failures are logged and skipped.
	CopyMatching(sel Selector, outDir string) []string

	// Close releases resources held by the container.
	Close() error
}

var (
	_ Container = (*Reader)(nil)
	_ Container = (*Dir)(nil)
	_ Container = (*Raw)(nil)
)

// OpenContainer opens p as a directory package when it is a directory,
// as a zip archive when it is one, and as a single raw entry otherwise.
// Only a missing path is an error.
func OpenContainer(p string, logger *slog.Logger) (Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, p, fs.ErrNotExist)
		}
		return nil, err
	}
	if info.IsDir() {
		return OpenDir(p, logger)
	}

	r, err := Open(p, logger)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, ErrNotArchive) {
		return nil, err
	}
	logger.Warn("input is not a valid zip file, reading it as raw bytes", "path", p)
	return &Raw{path: p, logger: logger}, nil
}

// Dir is a directory package such as a macOS Keynote bundle.
type Dir struct {
	root   string
	names  []string
	logger *slog.Logger
}

// OpenDir walks root and records every regular file.
// Unreadable subtrees are logged and skipped.
func OpenDir(root string, logger *slog.Logger) (*Dir, error) {
	if err := CheckExists(root); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dir{root: root, logger: logger}
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("skipping unreadable path in package", "path", p, "error", err)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil //nolint:nilerr // unreachable for paths below root
		}
		d.names = append(d.names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Path returns the package directory.
func (d *Dir) Path() string { return d.root }

// Names returns slash-separated paths relative to the package root, in
// lexical walk order.
func (d *Dir) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// ReadEntry reads the file at the relative path name.
func (d *Dir) ReadEntry(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(name))) //nolint:gosec // name comes from Names
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	return data, err
}

// CopyMatching copies selected package files into outDir.
func (d *Dir) CopyMatching(sel Selector, outDir string) []string {
	var written []string
	for _, name := range d.names {
		if !sel(name) {
			continue
		}
		dst, err := CopyFile(filepath.Join(d.root, filepath.FromSlash(name)), outDir)
		if err != nil {
			d.logger.Warn("skipping package file", "package", d.root, "entry", name, "error", err)
			continue
		}
		written = append(written, dst)
	}
	return written
}

// Close is a no-op for directories.
func (d *Dir) Close() error { return nil }

// Raw exposes a file that is neither a directory nor a zip archive as a
// container with a single entry named after the file.
type Raw struct {
	path   string
	logger *slog.Logger
}

// Path returns the file path.
func (r *Raw) Path() string { return r.path }

// Names returns the file's base name.
func (r *Raw) Names() []string { return []string{filepath.Base(r.path)} }

// ReadEntry returns the whole file for its single entry name.
func (r *Raw) ReadEntry(name string) ([]byte, error) {
	if name != filepath.Base(r.path) {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	return os.ReadFile(r.path)
}

// CopyMatching never copies anything: a raw file has no embedded entries.
func (r *Raw) CopyMatching(Selector, string) []string { return nil }

// Close is a no-op for raw files.
func (r *Raw) Close() error { return nil }
