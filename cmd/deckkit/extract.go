package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/deckkit/internal/config"
	"github.com/nao1215/deckkit/internal/database"
	"github.com/nao1215/deckkit/internal/extract"
	"github.com/nao1215/deckkit/internal/model"
	"github.com/nao1215/deckkit/internal/pipeline"
	"github.com/nao1215/deckkit/internal/report"
)

// NewExtractCmd creates the extract-fonts command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract-fonts <file-or-dir>...",
		Short: "Extract fonts from PowerPoint and Keynote files",
		Long: `Extract copies the embedded font files out of .pptx and .key presentations
and lists every font family the slides reference, sorted into system,
commercial and free fonts.

Each input gets its own folder below the output directory, named after
the file. The folder also holds a fonts.css with @font-face rules for
the embedded fonts. Directories are scanned non-recursively.

Examples:
  # Extract fonts from a single deck
  deckkit extract-fonts keynote.pptx

  # Extract every presentation in a folder into ./fonts
  deckkit extract-fonts ./talks -o fonts

  # Write a Markdown report and remember the results
  deckkit extract-fonts ./talks --markdown --report fonts.md --save`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExtractCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Output directory for extracted fonts")
	cmd.Flags().Bool("no-css", false, "Do not write fonts.css next to the embedded fonts")
	cmd.Flags().Bool("save", false, "Save each result in the history database")
	addReportFlags(cmd)

	return cmd
}

// addReportFlags adds the report format flags shared by several commands.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("report", "r", "",
		"Write report to specified file path (creates directories if needed)")
}

// applyReportFlags copies the report flags onto cfg.
func applyReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("report")
	return err
}

func runExtractCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := changedString(cmd, "output", &cfg.OutputDir); err != nil {
		return err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return err
	}
	if cfg.SaveToDB, err = cmd.Flags().GetBool("save"); err != nil {
		return err
	}
	noCSS, err := cmd.Flags().GetBool("no-css")
	if err != nil {
		return err
	}

	if cfg.Inputs, err = collectInputs(args, isPresentation); err != nil {
		return fmt.Errorf("no presentation files found: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	return runExtract(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger,
		extract.WithLogger(logger), extract.WithStylesheet(!noCSS))
}

// runExtract processes cfg.Inputs, prints progress to status and the
// report to out (or cfg.ReportFile).
func runExtract(ctx context.Context, cfg *config.Config, out, status io.Writer, logger *slog.Logger, opts ...extract.Option) error {
	u := newUI(status)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())
	}

	u.info("Found %d presentation file(s)", len(cfg.Inputs))

	var results []*model.ExtractionResult
	bp := pipeline.NewBatchProcessor(func(ctx context.Context, input string) (*model.ExtractionResult, error) {
		return extract.File(ctx, input, cfg.OutputDir, opts...)
	}, pipeline.WithBatchLogger(logger))

	tally, err := bp.ProcessBatchWithCallback(ctx, cfg.Inputs, func(input string, res *model.ExtractionResult, err error) {
		name := filepath.Base(input)
		if err != nil {
			u.failure("%s: %v", name, err)
			return
		}
		results = append(results, res)
		u.success("%s: %d embedded, %d referenced", name, len(res.EmbeddedFonts), len(res.ReferencedFonts))
		if cfg.Verbose {
			u.file(res.OutputFolder)
		}
		if db != nil {
			id, err := db.SaveResult(ctx, res)
			if err != nil {
				logger.Error("failed to save extraction", "input", input, "error", err)
				u.warning("%s: not saved to history: %v", name, err)
				return
			}
			u.detail("saved as run #%d", id)
		}
	})

	rep := report.NewExtractionReport(results, tally)
	if werr := writeReport(cfg, out, func(w report.Writer) error {
		_, err := w.Write(rep)
		return err
	}); werr != nil {
		return werr
	}
	if cfg.ReportFile != "" {
		u.success("Report written to %s", cfg.ReportFile)
	}

	if err != nil {
		u.warning("Cancelled after %d of %d file(s)", tally.Total(), len(cfg.Inputs))
		return err
	}
	if tally.Failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", tally.Failed, tally.Total())
	}
	return nil
}

// writeReport opens the report destination and hands the writer for the
// configured format to fn.
func writeReport(cfg *config.Config, stdout io.Writer, fn func(report.Writer) error) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
	return fn(w)
}
