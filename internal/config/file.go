package config

import "time"

// ServerSection holds web UI settings from the configuration file.
type ServerSection struct {
	// Address is the listen address, for example "127.0.0.1:5000".
	Address string `yaml:"address,omitempty"`

	// MaxUploadMB is the upload limit in megabytes.
	MaxUploadMB int64 `yaml:"maxUploadMB,omitempty"`
}

// File represents the structure of the .deckkit.yaml configuration file.
// Every field is optional; zero values leave the built-in default alone.
type File struct {
	// Output is the base directory for extracted fonts.
	Output string `yaml:"output,omitempty"`

	// HuntOutput is the base directory for font hunting projects.
	HuntOutput string `yaml:"huntOutput,omitempty"`

	// ConvertOutput is the directory for converted PPTX files.
	ConvertOutput string `yaml:"convertOutput,omitempty"`

	// DPI is the PDF rasterization resolution.
	DPI int `yaml:"dpi,omitempty"`

	// Rasterizer is the path of the pdftoppm executable.
	Rasterizer string `yaml:"rasterizer,omitempty"`

	// GoogleFontsAPIKey is the Google Fonts Developer API key.
	// Prefer the GOOGLE_FONTS_API_KEY environment variable over storing
	// the key in a file that may be committed.
	GoogleFontsAPIKey string `yaml:"googleFontsApiKey,omitempty"`

	// Timeout is the per-request timeout for Google Fonts, e.g. "10s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// DatabaseDir overrides the location of the history database.
	DatabaseDir string `yaml:"databaseDir,omitempty"`

	// Server holds web UI settings.
	Server ServerSection `yaml:"server,omitempty"`
}

// Apply copies every non-zero value of the file onto cfg.
func (cf *File) Apply(cfg *Config) {
	if cf.Output != "" {
		cfg.OutputDir = cf.Output
	}
	if cf.HuntOutput != "" {
		cfg.HuntOutputDir = cf.HuntOutput
	}
	if cf.ConvertOutput != "" {
		cfg.ConvertOutputDir = cf.ConvertOutput
	}
	if cf.DPI != 0 {
		cfg.DPI = cf.DPI
	}
	if cf.Rasterizer != "" {
		cfg.RasterizerPath = cf.Rasterizer
	}
	if cf.GoogleFontsAPIKey != "" {
		cfg.GoogleFontsAPIKey = cf.GoogleFontsAPIKey
	}
	if cf.Timeout != 0 {
		cfg.Timeout = cf.Timeout
	}
	if cf.DatabaseDir != "" {
		cfg.DBDir = cf.DatabaseDir
	}
	if cf.Server.Address != "" {
		cfg.ServerAddress = cf.Server.Address
	}
	if cf.Server.MaxUploadMB != 0 {
		cfg.MaxUploadSize = cf.Server.MaxUploadMB * 1024 * 1024
	}
}
