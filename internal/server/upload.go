package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// AllowedExtensions lists the upload extensions accepted by the web UI.
var AllowedExtensions = []string{".pptx", ".key", ".keynote", ".pdf"}

var (
	errNoFile      = errors.New("no file provided")
	errBadFileType = errors.New("invalid file type, allowed: .pptx, .key, .keynote, .pdf")
)

// upload is a file received from a form, stored on disk.
type upload struct {
	// Name is the sanitized client file name.
	Name string
	// Path is the stored file.
	Path string
	dir  string
}

// Remove deletes the stored upload.
func (u *upload) Remove() {
	_ = os.RemoveAll(u.dir)
}

// receive stores the "file" form field. The request body is capped at
// the configured upload size.
func (s *Server) receive(w http.ResponseWriter, r *http.Request) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, errNoFile
		}
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errNoFile
	}
	defer file.Close()

	name := cleanFileName(header.Filename)
	if name == "" {
		return nil, errNoFile
	}
	if !slices.Contains(AllowedExtensions, strings.ToLower(filepath.Ext(name))) {
		return nil, errBadFileType
	}

	dir := filepath.Join(s.uploadDir(), uuid.NewString())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload folder: %w", err)
	}
	u := &upload{Name: name, Path: filepath.Join(dir, name), dir: dir}

	dst, err := os.OpenFile(u.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		u.Remove()
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		_ = dst.Close()
		u.Remove()
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		u.Remove()
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	return u, nil
}

// cleanFileName keeps the base name of a client supplied path. Browsers on
// Windows may send backslash separated paths.
func cleanFileName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || filepath.Ext(name) == name {
		return ""
	}
	return name
}
