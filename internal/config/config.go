package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// They mirror the behaviour deckkit users relied on before configuration
// files existed, so running without a config file changes nothing.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "deckkit"

	// DefaultOutputDir is where extract-fonts writes one folder per input.
	DefaultOutputDir = "extracted_fonts"

	// DefaultHuntOutputDir is where hunt-fonts creates project folders.
	DefaultHuntOutputDir = "hunted_fonts"

	// DefaultConvertOutputDir is where pdf-to-pptx writes generated decks.
	DefaultConvertOutputDir = "converted_pptx"

	// DefaultDPI is the rasterization resolution for PDF pages.
	// 300 DPI keeps text crisp when projected on large venue screens.
	DefaultDPI = 300

	// MinDPI and MaxDPI bound the resolution accepted by Validate.
	MinDPI = 36
	MaxDPI = 1200

	// DefaultRasterizer is the external program used to render PDF pages.
	DefaultRasterizer = "pdftoppm"

	// DefaultTimeout is the timeout for each Google Fonts request.
	DefaultTimeout = 10 * time.Second

	// DefaultServerAddress is the listen address of the local web UI.
	DefaultServerAddress = "127.0.0.1:5000"

	// DefaultMaxUploadSize limits uploads accepted by the web UI.
	DefaultMaxUploadSize = 500 * 1024 * 1024 // 500MB

	// APIKeyEnv is the environment variable holding the Google Fonts API key.
	APIKeyEnv = "GOOGLE_FONTS_API_KEY"
)

// Config holds all configuration options for deckkit.
// It is populated from defaults, the configuration file, the environment
// and CLI flags (in increasing order of precedence) and then passed down
// explicitly; no package reads global configuration.
type Config struct {
	// OutputDir is the base directory for extracted fonts.
	// Each input gets a subfolder named after its file stem.
	OutputDir string

	// HuntOutputDir is the base directory for font hunting projects.
	HuntOutputDir string

	// ConvertOutputDir is the directory receiving converted PPTX files.
	ConvertOutputDir string

	// DPI is the resolution used when rasterizing PDF pages.
	DPI int

	// RasterizerPath is the pdftoppm executable. A bare name is looked up
	// in PATH.
	RasterizerPath string

	// GoogleFontsAPIKey enables catalog lookups and automatic downloads.
	// When empty, hunting still produces search links but downloads nothing.
	GoogleFontsAPIKey string

	// Timeout is the timeout for each HTTP request to Google Fonts.
	Timeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport prints extraction results as JSON.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport prints extraction results as GitHub Flavored Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Inputs is the list of files or directories to process.
	Inputs []string

	// DBDir is the directory holding the extraction history database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB stores each extraction result in the history database.
	SaveToDB bool

	// ServerAddress is the listen address for `deckkit serve`.
	ServerAddress string

	// MaxUploadSize is the maximum accepted upload size in bytes.
	MaxUploadSize int64
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputDir:        DefaultOutputDir,
		HuntOutputDir:    DefaultHuntOutputDir,
		ConvertOutputDir: DefaultConvertOutputDir,
		DPI:              DefaultDPI,
		RasterizerPath:   DefaultRasterizer,
		Timeout:          DefaultTimeout,
		DBDir:            XDGDataDir(),
		ServerAddress:    DefaultServerAddress,
		MaxUploadSize:    DefaultMaxUploadSize,
	}
}

// XDGDataDir returns the XDG data directory for deckkit.
// On Linux: ~/.local/share/deckkit
// On macOS: ~/Library/Application Support/deckkit
// On Windows: %LOCALAPPDATA%\deckkit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for deckkit.
// On Linux: ~/.config/deckkit
// On macOS: ~/Library/Application Support/deckkit
// On Windows: %APPDATA%\deckkit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for deckkit.
// The web UI stores uploads below it.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}
	return c.validateSettings()
}

// ValidateServer checks the settings used by the web UI, which runs
// without command-line inputs.
func (c *Config) ValidateServer() error {
	if c.MaxUploadSize <= 0 {
		return ErrInvalidUploadSize
	}
	return c.validateSettings()
}

func (c *Config) validateSettings() error {
	if c.OutputDir == "" || c.HuntOutputDir == "" || c.ConvertOutputDir == "" {
		return ErrEmptyOutputDir
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.DPI < MinDPI || c.DPI > MaxDPI {
		return ErrInvalidDPI
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
