package storage

import (
	"context"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/google/uuid"
)

// Indexer persists segments for later inspection. Rows are keyed by
// (doc_id, par_ind) so storing the same run twice replaces, never duplicates.
type Indexer interface {
	SaveBulk(ctx context.Context, runID uuid.UUID, segments []domain.Segment) error
	Close() error
}

type Type string

const (
	ES     Type = "es"
	PG     Type = "pg"
	SQLite Type = "sqlite"
	InMem  Type = "in_mem"
	// None disables storage.
	None Type = ""
)

var Types = []Type{ES, PG, SQLite, InMem}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
