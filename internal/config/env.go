package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIKeyEnv names the variable holding the Gemini API key.
const DefaultAPIKeyEnv = "GEMINI_API_KEY"

// LoadEnv loads .env files into the process environment. Missing files are
// skipped and variables already set are kept.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// APIKey returns the trimmed value of the named variable, or DefaultAPIKeyEnv when name is empty.
func APIKey(name string) string {
	if name == "" {
		name = DefaultAPIKeyEnv
	}
	return strings.TrimSpace(os.Getenv(name))
}
