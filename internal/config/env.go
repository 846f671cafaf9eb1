package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ReadEnvFile parses a dotenv file without touching the environment.
func ReadEnvFile(path string) (map[string]string, error) {
	return godotenv.Read(path)
}

// LoadEnvFiles loads dotenv files into the process environment.
// Variables already present in the environment win over file values,
// and later files do not override earlier ones. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		existing = append(existing, p)
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load %s: %w", strings.Join(existing, ", "), err)
	}
	return nil
}

// ApplyEnv sets values from the environment onto cfg.
// lookup is os.LookupEnv in production and a map lookup in tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(APIKeyEnv); ok && strings.TrimSpace(v) != "" {
		c.GoogleFontsAPIKey = strings.TrimSpace(v)
	}
}
