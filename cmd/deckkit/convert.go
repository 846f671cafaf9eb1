package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/deckkit/internal/config"
	"github.com/nao1215/deckkit/internal/model"
	"github.com/nao1215/deckkit/internal/pdfconv"
	"github.com/nao1215/deckkit/internal/pipeline"
)

// NewConvertCmd creates the pdf-to-pptx command.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf-to-pptx <file-or-dir>...",
		Short: "Convert PDF files into PowerPoint decks",
		Long: `Convert renders every PDF page as an image and places it on its own
16:9 slide, scaled to fit and centred. The text is not editable.

Rendering uses pdftoppm from poppler-utils:
  macOS:         brew install poppler
  Debian/Ubuntu: sudo apt-get install poppler-utils

Examples:
  # Convert one PDF
  deckkit pdf-to-pptx slides.pdf

  # Convert a folder of PDFs at 150 DPI
  deckkit pdf-to-pptx ./exports -d 150 -o decks

  # Choose the output file name
  deckkit pdf-to-pptx slides.pdf -n "Board Meeting"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runConvertCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConvertOutputDir,
		"Output directory for PPTX files")
	cmd.Flags().IntP("dpi", "d", config.DefaultDPI, "Image resolution")
	cmd.Flags().StringP("name", "n", "",
		"Output file name (single input only, default: PDF file name)")
	cmd.Flags().String("pdftoppm", config.DefaultRasterizer, "Path of the pdftoppm executable")

	return cmd
}

func runConvertCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := changedString(cmd, "output", &cfg.ConvertOutputDir); err != nil {
		return err
	}
	if err := changedInt(cmd, "dpi", &cfg.DPI); err != nil {
		return err
	}
	if err := changedString(cmd, "pdftoppm", &cfg.RasterizerPath); err != nil {
		return err
	}
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}

	if cfg.Inputs, err = collectInputs(args, isPDF); err != nil {
		return fmt.Errorf("no PDF files found: %w", err)
	}
	if name != "" && len(cfg.Inputs) > 1 {
		return errors.New("--name can only be used with a single PDF")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	conv := pdfconv.New(cfg.ConvertOutputDir,
		pdfconv.WithDPI(cfg.DPI),
		pdfconv.WithRasterizer(pdfconv.Pdftoppm{Path: cfg.RasterizerPath}),
		pdfconv.WithLogger(logger),
	)
	return runConvert(ctx, conv, cfg.Inputs, name, cmd.ErrOrStderr(), logger)
}

func runConvert(ctx context.Context, conv *pdfconv.Converter, inputs []string, name string, status io.Writer, logger *slog.Logger) error {
	u := newUI(status)
	u.info("Found %d PDF file(s)", len(inputs))

	bp := pipeline.NewBatchProcessor(func(ctx context.Context, input string) (*model.ConversionResult, error) {
		u.detail("Converting %s...", filepath.Base(input))
		return conv.Convert(ctx, input, name)
	}, pipeline.WithBatchLogger(logger))

	tally, err := bp.ProcessBatchWithCallback(ctx, inputs, func(input string, res *model.ConversionResult, err error) {
		if err != nil {
			u.failure("Error converting %s: %v", filepath.Base(input), err)
			if errors.Is(err, pdfconv.ErrRasterizerMissing) {
				u.info("Install poppler-utils (brew install poppler / apt-get install poppler-utils)")
			}
			return
		}
		u.success("Created %s (%d slides)", res.OutputPath, res.Pages)
	})
	if err != nil {
		return err
	}

	u.newline()
	u.info("Successfully converted: %d/%d file(s)", tally.Succeeded, tally.Total())
	if tally.Failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", tally.Failed, tally.Total())
	}
	return nil
}
