package env

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// ENV_PATH overrides defaultPath. A missing default file is not an error,
// a missing file named by ENV_PATH is.
func LoadDotEnv(defaultPath string) error {
	envPath, explicit := os.LookupEnv("ENV_PATH")
	if !explicit || envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
		explicit = false
	}

	err := godotenv.Load(envPath)
	if err == nil {
		slog.Debug("Loaded environment file", "path", envPath)
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Skipping .env ...", "path", envPath)
		return nil
	}

	return fmt.Errorf("failed to load env file %s: %w", envPath, err)
}

// GetOr returns the trimmed value of key, or fallback when it is unset or blank.
func GetOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// List splits a comma separated variable, dropping blank items.
func List(key string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
