package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage/es"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage/pg"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage/sqlite"
)

// NewIndexer creates the storage.Indexer selected by cfg.Type.
func NewIndexer(ctx context.Context, cfg StorageConfig) (storage.Indexer, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		idx, err := pg.NewIndexer(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return idx, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		return es.NewIndexer(ctx, *cfg.Es)

	case storage.SQLite:
		if cfg.SQLite == nil {
			return nil, fmt.Errorf("missing SQLite configuration")
		}
		return sqlite.NewIndexer(ctx, *cfg.SQLite)

	case storage.InMem:
		return in_mem.NewInMemIndexer(), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
