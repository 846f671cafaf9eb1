package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/deckkit/internal/catalog"
	"github.com/nao1215/deckkit/internal/config"
	"github.com/nao1215/deckkit/internal/database"
	"github.com/nao1215/deckkit/internal/pdfconv"
	"github.com/nao1215/deckkit/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local web UI",
		Long: `Serve starts a small web UI for uploading presentations and PDFs.
It listens on 127.0.0.1:5000 by default and has no authentication,
so keep it on the loopback interface.

Examples:
  deckkit serve
  deckkit serve -a 127.0.0.1:8080 --save`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("address", "a", config.DefaultServerAddress, "Listen address")
	cmd.Flags().Int64("max-upload-mb", config.DefaultMaxUploadSize/(1024*1024), "Maximum upload size in MB")
	cmd.Flags().Bool("save", false, "Save each extraction in the history database")
	cmd.Flags().String("work-dir", "", "Directory for uploads (default: XDG cache directory)")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := changedString(cmd, "address", &cfg.ServerAddress); err != nil {
		return err
	}
	if cmd.Flags().Changed("max-upload-mb") {
		mb, err := cmd.Flags().GetInt64("max-upload-mb")
		if err != nil {
			return err
		}
		cfg.MaxUploadSize = mb * 1024 * 1024
	}
	if cfg.SaveToDB, err = cmd.Flags().GetBool("save"); err != nil {
		return err
	}
	workDir, err := cmd.Flags().GetString("work-dir")
	if err != nil {
		return err
	}
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithVersion(getVersion()),
		server.WithRasterizer(pdfconv.Pdftoppm{Path: cfg.RasterizerPath}),
	}
	if workDir != "" {
		opts = append(opts, server.WithWorkDir(workDir))
	}
	if cfg.GoogleFontsAPIKey != "" {
		opts = append(opts, server.WithCatalog(catalog.New(cfg.GoogleFontsAPIKey,
			catalog.WithTimeout(cfg.Timeout),
			catalog.WithLogger(logger),
		)))
	}
	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		opts = append(opts, server.WithHistory(db))
	}

	srv := server.New(cfg, opts...)
	u := newUI(cmd.ErrOrStderr())

	ln, err := srv.Listen()
	if err != nil {
		return err
	}
	u.success("deckkit web UI on http://%s", ln.Addr())
	u.info("Press Ctrl+C to stop")
	if err := srv.Serve(ctx, ln); err != nil {
		return err
	}
	u.info("Server stopped")
	return nil
}
