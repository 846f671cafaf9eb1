package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/deckkit/internal/catalog"
	"github.com/nao1215/deckkit/internal/config"
	"github.com/nao1215/deckkit/internal/extract"
	"github.com/nao1215/deckkit/internal/hunter"
	"github.com/nao1215/deckkit/internal/model"
	"github.com/nao1215/deckkit/internal/pipeline"
	"github.com/nao1215/deckkit/internal/report"
)

// NewHuntCmd creates the hunt-fonts command.
func NewHuntCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hunt-fonts <file-or-dir>...",
		Short: "Find and download the fonts a presentation needs",
		Long: `Hunt analyzes presentations, collects every referenced font family and
looks for each one:

- Google Fonts: downloaded automatically when an API key is configured
- Well known free fonts: direct links to their home pages
- Commercial fonts: search links on font marketplaces
- Anything else: search links on free font repositories

The results go to <output>/<project>/, together with an HTML report
(font_acquisition_report.html) and the downloaded fonts in fonts_downloaded/.

The Google Fonts API key is read from --api-key, the GOOGLE_FONTS_API_KEY
environment variable, a .env file or the configuration file.

Examples:
  # Hunt the fonts of one deck
  deckkit hunt-fonts keynote.pptx

  # Hunt every deck in a folder under a project name
  deckkit hunt-fonts ./talks -p conference-2026`,
		Args: cobra.MinimumNArgs(1),
		RunE: runHuntCmd,
	}

	cmd.Flags().StringP("project", "p", "",
		"Project name for the output folder (default: input file or folder name)")
	cmd.Flags().StringP("output", "o", config.DefaultHuntOutputDir, "Output directory")
	cmd.Flags().StringP("api-key", "k", "",
		"Google Fonts API key (or set "+config.APIKeyEnv+")")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each Google Fonts request")
	addReportFlags(cmd)

	return cmd
}

func runHuntCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := changedString(cmd, "output", &cfg.HuntOutputDir); err != nil {
		return err
	}
	if err := changedString(cmd, "api-key", &cfg.GoogleFontsAPIKey); err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return err
		}
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return err
	}
	project, err := cmd.Flags().GetString("project")
	if err != nil {
		return err
	}
	if project == "" {
		project = defaultProject(args[0])
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

	var cat hunter.Catalog
	if cfg.GoogleFontsAPIKey != "" {
		cat = catalog.New(cfg.GoogleFontsAPIKey,
			catalog.WithTimeout(cfg.Timeout),
			catalog.WithLogger(logger),
		)
	}
	return runHunt(ctx, cfg, project, cat, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// defaultProject names the project after the input file or folder.
func defaultProject(input string) string {
	if st, err := os.Stat(input); err == nil && st.IsDir() && !isPresentation(input) {
		if name := filepath.Base(filepath.Clean(input)); name != "." && name != string(filepath.Separator) {
			return name
		}
		return hunter.DefaultProject
	}
	return model.Stem(input)
}

// collectFontNames extracts every input into a scratch folder and returns
// the union of the referenced font names.
func collectFontNames(ctx context.Context, inputs []string, u *ui, logger *slog.Logger) ([]string, error) {
	scratch, err := os.MkdirTemp("", "deckkit-hunt-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	names := model.NewFontSet()
	bp := pipeline.NewBatchProcessor(func(ctx context.Context, input string) (*model.ExtractionResult, error) {
		return extract.File(ctx, input, scratch,
			extract.WithLogger(logger), extract.WithStylesheet(false))
	}, pipeline.WithBatchLogger(logger))

	_, err = bp.ProcessBatchWithCallback(ctx, inputs, func(input string, res *model.ExtractionResult, err error) {
		if err != nil {
			u.failure("Error analyzing %s: %v", filepath.Base(input), err)
			return
		}
		for _, n := range res.ReferencedFonts {
			names.Add(n)
		}
		if len(res.EmbeddedFonts) > 0 {
			u.detail("%s: %d embedded font(s) already available", filepath.Base(input), len(res.EmbeddedFonts))
		}
	})
	return names.Sorted(), err
}

func runHunt(ctx context.Context, cfg *config.Config, project string, cat hunter.Catalog, out, status io.Writer, logger *slog.Logger) error {
	u := newUI(status)
	u.info("Found %d presentation file(s)", len(cfg.Inputs))
	u.title("Step 1: Analyzing presentations")

	names, err := collectFontNames(ctx, cfg.Inputs, u, logger)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		u.warning("No font references found in presentations")
		return nil
	}
	u.success("Found %d unique fonts to hunt for", len(names))

	u.newline()
	u.title("Step 2: Hunting for fonts")
	if cat == nil {
		u.warning("No Google Fonts API key found. Set %s in a .env file", config.APIKeyEnv)
		u.info("Search links are still generated, but nothing is downloaded")
	}

	opts := []hunter.Option{
		hunter.WithLogger(logger),
		hunter.WithProgress(func(i, total int, name string) {
			u.detail("[%d/%d] %s", i, total, name)
		}),
	}
	if cat != nil {
		opts = append(opts, hunter.WithCatalog(cat))
	}
	result, err := hunter.New(cfg.HuntOutputDir, opts...).Hunt(ctx, names, project)
	if err != nil {
		if hunter.IsCancelled(err) {
			u.warning("Hunt cancelled")
		}
		return err
	}

	u.newline()
	if err := writeReport(cfg, out, func(w report.Writer) error {
		_, err := w.WriteHunt(result)
		return err
	}); err != nil {
		return err
	}

	u.success("Font hunting complete!")
	u.count("Downloaded", len(result.Downloaded))
	u.count("Free", len(result.FreeFound))
	u.count("Commercial", len(result.Commercial))
	u.file(result.ReportPath)
	if len(result.Downloaded) > 0 {
		u.file(filepath.Join(result.ProjectFolder, hunter.DownloadsDir))
	}
	return nil
}
