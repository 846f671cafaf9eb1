package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/deckkit/internal/config"
	dklog "github.com/nao1215/deckkit/internal/log"
	"github.com/nao1215/deckkit/internal/model"
)

// envFiles are the dotenv files read before the environment is applied.
// The first file that sets a variable wins.
func envFiles() []string {
	files := []string{".env"}
	files = append(files, filepath.Join(config.XDGConfigDir(), ".env"))
	return files
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// loadConfig builds the configuration shared by every command:
// defaults, then the config file, then .env files and the environment.
// Command flags are applied on top by the caller.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = path

	// An explicitly given config file must exist; the default locations
	// are optional.
	found := config.FindConfigFile(path)
	switch {
	case found != "":
		file, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		file.Apply(cfg)
	case path != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, path)
	}

	if err := config.LoadEnvFiles(envFiles()...); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// setupLogger creates the secure logger and installs it as the default.
func setupLogger(verbose bool) *slog.Logger {
	logger := dklog.NewSecureLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// changedString overwrites dst with the flag value when the user set it.
func changedString(cmd *cobra.Command, name string, dst *string) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// changedInt overwrites dst with the flag value when the user set it.
func changedInt(cmd *cobra.Command, name string, dst *int) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// collectInputs expands each argument into presentation or PDF files.
// An argument accepted as is (a file or a Keynote package) is kept.
// Other directories are scanned non-recursively and matched case-insensitively
// by accept. Files are passed through unchecked so that the extractor
// reports missing or unsupported inputs itself.
func collectInputs(args []string, accept func(string) bool) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil || !st.IsDir() || accept(arg) {
			inputs = append(inputs, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		for _, e := range entries {
			// Keynote packages are directories, so entries are not
			// filtered by type.
			if p := filepath.Join(arg, e.Name()); accept(p) {
				inputs = append(inputs, p)
			}
		}
	}
	if len(inputs) == 0 {
		return nil, errNoMatchingFiles
	}
	return inputs, nil
}

var errNoMatchingFiles = errors.New("no matching files found")

func isPresentation(p string) bool {
	f, ok := model.DetectFormat(p)
	return ok && f.IsPresentation()
}

func isPDF(p string) bool {
	f, ok := model.DetectFormat(p)
	return ok && f == model.FormatPDF
}
