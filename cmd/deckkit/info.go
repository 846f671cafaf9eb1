package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nao1215/deckkit/internal/archive"
	"github.com/nao1215/deckkit/internal/extract"
	"github.com/nao1215/deckkit/internal/model"
	"github.com/nao1215/deckkit/internal/pdfconv"
)

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show information about a presentation or PDF file",
		Long: `Info prints the size and type of a file. For presentations it lists the
embedded and referenced fonts with their category; for PDFs it prints
the page count and document metadata. Nothing is written to disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(getVerboseFlag(cmd))
			return runInfo(cmd.Context(), args[0], cmd.OutOrStdout(), logger)
		},
	}
}

func runInfo(ctx context.Context, path string, out io.Writer, logger *slog.Logger) error {
	if err := archive.CheckExists(path); err != nil {
		return err
	}
	st, err := os.Stat(path)
	if err != nil {
		return err
	}

	u := newUI(out)
	u.title("File Information")
	u.keyValue("File", filepath.Base(path))
	if abs, err := filepath.Abs(path); err == nil {
		u.keyValue("Path", abs)
	}
	if !st.IsDir() {
		u.keyValue("Size", fmt.Sprintf("%.2f KB", float64(st.Size())/1024))
	}
	u.keyValue("Type", filepath.Ext(path))

	format, ok := model.DetectFormat(path)
	switch {
	case !ok:
		u.warning("Unsupported file type")
		return nil
	case format == model.FormatPDF:
		return pdfInfo(path, u)
	default:
		return presentationInfo(ctx, path, u, logger)
	}
}

func pdfInfo(path string, u *ui) error {
	info, err := pdfconv.ReadInfo(path)
	if err != nil {
		return err
	}
	u.keyValue("Pages", strconv.Itoa(info.Pages))
	for _, kv := range [][2]string{
		{"Title", info.Title},
		{"Author", info.Author},
		{"Subject", info.Subject},
		{"Keywords", info.Keywords},
		{"Creator", info.Creator},
		{"Producer", info.Producer},
	} {
		if kv[1] != "" {
			u.keyValue(kv[0], kv[1])
		}
	}
	u.newline()
	u.info("Use 'deckkit pdf-to-pptx' to convert it to PowerPoint")
	return nil
}

func presentationInfo(ctx context.Context, path string, u *ui, logger *slog.Logger) error {
	scratch, err := os.MkdirTemp("", "deckkit-info-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	res, err := extract.File(ctx, path, scratch,
		extract.WithLogger(logger), extract.WithStylesheet(false))
	if err != nil {
		return err
	}

	u.newline()
	u.count("Embedded", len(res.EmbeddedDetails))
	for _, f := range res.EmbeddedDetails {
		line := f.FileName
		if f.Family != "" {
			line += " (" + f.Family + ")"
		}
		u.detail("%s", line)
	}

	u.count("Referenced", len(res.ReferencedFonts))
	for _, name := range res.ReferencedFonts {
		label := ""
		if c, ok := res.CategoryOf(name); ok {
			label = " [" + c.String() + "]"
		}
		u.detail("%s%s", name, label)
	}
	return nil
}
