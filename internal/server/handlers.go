package server

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nao1215/deckkit/internal/config"
	"github.com/nao1215/deckkit/internal/extract"
	"github.com/nao1215/deckkit/internal/hunter"
	"github.com/nao1215/deckkit/internal/model"
	"github.com/nao1215/deckkit/internal/pdfconv"
	"github.com/nao1215/deckkit/internal/pptx"
	"github.com/nao1215/deckkit/internal/report"
)

// DefaultWebProject is the hunt project name when the form has none.
const DefaultWebProject = "WebUpload"

// HuntResponse is the body of a successful /hunt request.
type HuntResponse struct {
	// Fonts are the referenced font names found in the presentation.
	Fonts []string `json:"fonts"`

	// Message explains an empty result.
	Message string `json:"message,omitempty"`

	// Result is nil when the presentation references no fonts.
	Result *model.HuntResult `json:"result,omitempty"`

	// ReportURL is the path of the HTML report on this server.
	ReportURL string `json:"report_url,omitempty"`
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	GoogleFonts bool   `json:"google_fonts"`
	History     bool   `json:"history"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type indexData struct {
	Version           string
	APIKeyConfigured  bool
	MaxUploadMB       int64
	AllowedExtensions string
	DefaultDPI        int
}

func (s *Server) googleFontsEnabled() bool {
	return s.catalog != nil && s.catalog.Enabled()
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := indexData{
		Version:           s.version,
		APIKeyConfigured:  s.googleFontsEnabled(),
		MaxUploadMB:       s.cfg.MaxUploadSize / (1024 * 1024),
		AllowedExtensions: strings.Join(AllowedExtensions, ","),
		DefaultDPI:        s.cfg.DPI,
	}
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Warn("failed to render index", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Version:     s.version,
		GoogleFonts: s.googleFontsEnabled(),
		History:     s.history != nil,
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	explicit := r.URL.Query().Get("format") != ""

	res, ok := s.extractUpload(w, r)
	if !ok {
		return
	}

	if s.history != nil {
		id, err := s.history.SaveResult(r.Context(), res)
		if err != nil {
			s.logger.Warn("failed to save extraction history", "error", err)
		} else {
			w.Header().Set("X-Deckkit-Run-Id", strconv.FormatInt(id, 10))
		}
	}

	if !explicit {
		s.writeJSON(w, http.StatusOK, res)
		return
	}

	var tally model.Tally
	tally.Success()
	rep := report.NewExtractionReport([]*model.ExtractionResult{res}, tally)
	switch format {
	case report.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case report.FormatMarkdown:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	if _, err := report.NewWriter(format, w, s.version).Write(rep); err != nil {
		s.logger.Warn("failed to write report", "error", err)
	}
}

var errNotPresentation = errors.New("not a presentation file")

// extractUpload receives a presentation and extracts it into the
// configured output directory. It writes the error response itself.
func (s *Server) extractUpload(w http.ResponseWriter, r *http.Request) (*model.ExtractionResult, bool) {
	up, err := s.receive(w, r)
	if err != nil {
		s.writeUploadError(w, err)
		return nil, false
	}
	defer up.Remove()

	if format, ok := model.DetectFormat(up.Name); !ok || !format.IsPresentation() {
		s.writeError(w, http.StatusBadRequest, errNotPresentation)
		return nil, false
	}

	res, err := extract.File(r.Context(), up.Path, s.cfg.OutputDir, extract.WithLogger(s.logger))
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		s.writeError(w, http.StatusBadRequest, err)
		return nil, false
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return res, true
}

func (s *Server) handleHunt(w http.ResponseWriter, r *http.Request) {
	res, ok := s.extractUpload(w, r)
	if !ok {
		return
	}

	if len(res.ReferencedFonts) == 0 {
		s.writeJSON(w, http.StatusOK, HuntResponse{
			Fonts:   []string{},
			Message: "No fonts found in presentation",
		})
		return
	}

	project := strings.TrimSpace(r.FormValue("project"))
	if project == "" {
		project = DefaultWebProject
	}

	h := hunter.New(s.cfg.HuntOutputDir,
		hunter.WithCatalog(s.catalog),
		hunter.WithLogger(s.logger),
	)
	result, err := h.Hunt(r.Context(), res.ReferencedFonts, project)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, HuntResponse{
		Fonts:     res.ReferencedFonts,
		Result:    result,
		ReportURL: "/reports/" + filepath.Base(result.ProjectFolder),
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	up, err := s.receive(w, r)
	if err != nil {
		s.writeUploadError(w, err)
		return
	}
	defer up.Remove()

	if !strings.EqualFold(filepath.Ext(up.Name), ".pdf") {
		s.writeError(w, http.StatusBadRequest, pdfconv.ErrNotPDF)
		return
	}

	dpi := s.cfg.DPI
	if v := strings.TrimSpace(r.FormValue("dpi")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < config.MinDPI || n > config.MaxDPI {
			s.writeError(w, http.StatusBadRequest, config.ErrInvalidDPI)
			return
		}
		dpi = n
	}

	conv := pdfconv.New(s.cfg.ConvertOutputDir,
		pdfconv.WithDPI(dpi),
		pdfconv.WithRasterizer(s.rasterizer),
		pdfconv.WithLogger(s.logger),
	)
	res, err := conv.Convert(r.Context(), up.Path, r.FormValue("name"))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, pdfconv.ErrRasterizerMissing):
			status = http.StatusServiceUnavailable
		case errors.Is(err, pdfconv.ErrInvalidPDF), errors.Is(err, pdfconv.ErrNoPages):
			status = http.StatusUnprocessableEntity
		}
		s.writeError(w, status, err)
		return
	}

	w.Header().Set("Content-Type", pptx.MediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(res.OutputPath)))
	w.Header().Set("X-Deckkit-Pages", strconv.Itoa(res.Pages))
	http.ServeFile(w, r, res.OutputPath)
}

// projectDir resolves the {project} URL parameter to a hunt project
// folder. Names that would change under sanitizing are rejected.
func (s *Server) projectDir(r *http.Request) (string, bool) {
	project := chi.URLParam(r, "project")
	if project == "" || hunter.SafeName(project) != project {
		return "", false
	}
	return filepath.Join(s.cfg.HuntOutputDir, project), true
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	dir, ok := s.projectDir(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	path := filepath.Join(dir, report.HuntReportFileName)
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.HuntReportFileName))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, r, path)
}

func (s *Server) handleFontsZip(w http.ResponseWriter, r *http.Request) {
	dir, ok := s.projectDir(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	fontsDir := filepath.Join(dir, hunter.DownloadsDir)
	entries, err := os.ReadDir(fontsDir)
	if err != nil || len(entries) == 0 {
		http.Error(w, "No fonts found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(dir)+"_fonts.zip"))

	zw := zip.NewWriter(w)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := addZipFile(zw, filepath.Join(fontsDir, e.Name())); err != nil {
			s.logger.Warn("failed to add font to archive", "file", e.Name(), "error", err)
			return
		}
	}
	if err := zw.Close(); err != nil {
		s.logger.Warn("failed to finish font archive", "error", err)
	}
}

func addZipFile(zw *zip.Writer, path string) error {
	f, err := os.Open(path) //nolint:gosec // path comes from ReadDir of the project folder
	if err != nil {
		return err
	}
	defer f.Close()

	dst, err := zw.Create(filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, f)
	return err
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Warn("request failed", "status", status, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeUploadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		s.writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Errorf("file too large: limit is %d bytes", tooLarge.Limit))
	case errors.Is(err, errNoFile), errors.Is(err, errBadFileType):
		s.writeError(w, http.StatusBadRequest, err)
	default:
		s.writeError(w, http.StatusInternalServerError, err)
	}
}
