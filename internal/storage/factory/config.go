package factory

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage/es"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage/pg"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage/sqlite"
	"github.com/DjordjeVuckovic/mt-score-prep/pkg/stringsutil"
)

const defaultSQLitePath = "segments.db"

type StorageConfig struct {
	storage.Type
	Pg     *pg.PoolConfig
	Es     *es.ClientConfig
	SQLite *sqlite.Config
}

// Enabled reports whether segments should be stored at all.
func (c StorageConfig) Enabled() bool {
	return c.Type != storage.None
}

// LoadEnv reads STORAGE_TYPE and the settings of the selected backend.
// An unset STORAGE_TYPE disables storage.
func LoadEnv() (*StorageConfig, error) {
	return Resolve(storage.Type(os.Getenv("STORAGE_TYPE")))
}

// Resolve builds the configuration for storageType from the environment.
func Resolve(storageType storage.Type) (*StorageConfig, error) {
	storageType = storage.Type(strings.TrimSpace(string(storageType)))
	if storageType == storage.None {
		return &StorageConfig{Type: storage.None}, nil
	}
	if !slices.Contains(storage.Types, storageType) {
		slog.Error("Invalid STORAGE_TYPE value", "value", storageType)
		return nil, apperr.NewValidation(fmt.Sprintf(
			"invalid storage type: %s, expected one of %v", storageType, storage.Types))
	}

	cfg := &StorageConfig{Type: storageType}

	switch storageType {
	case storage.ES:
		cfg.Es = &es.ClientConfig{
			Addresses: stringsutil.RemoveEmptyStrings(strings.Split(os.Getenv("ES_ADDRESSES"), ",")),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if err := cfg.Es.Validate(); err != nil {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses, "error", err)
			return nil, apperr.NewValidationWrap("elasticsearch configuration", err)
		}
	case storage.PG:
		cfg.Pg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, apperr.NewValidation("PG_CONNECTION_STRING is not set")
		}
	case storage.SQLite:
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = defaultSQLitePath
		}
		cfg.SQLite = &sqlite.Config{Path: path}
	}

	return cfg, nil
}
