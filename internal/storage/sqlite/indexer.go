package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS segments (
    doc_id    TEXT    NOT NULL,
    par_ind   INTEGER NOT NULL,
    lang_pair TEXT    NOT NULL,
    src       TEXT    NOT NULL,
    hyp       TEXT    NOT NULL,
    ref       TEXT    NOT NULL DEFAULT '',
    run_id    TEXT    NOT NULL,
    PRIMARY KEY (doc_id, par_ind)
);
CREATE INDEX IF NOT EXISTS segments_lang_pair_idx ON segments (lang_pair);
`

type Config struct {
	Path string
}

type Indexer struct {
	db *sql.DB
}

// NewIndexer opens (creating if needed) the database at cfg.Path.
func NewIndexer(ctx context.Context, cfg Config) (*Indexer, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := sql.Open(driverName, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}
	return &Indexer{db: db}, nil
}

// SaveBulk replaces the rows of every document in segments in one transaction.
func (i *Indexer) SaveBulk(ctx context.Context, runID uuid.UUID, segments []domain.Segment) error {
	if len(segments) == 0 {
		return nil
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	del, err := tx.PrepareContext(ctx, `DELETE FROM segments WHERE doc_id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare delete: %w", err)
	}
	defer del.Close()

	for _, docID := range storage.DocIDs(segments) {
		if _, err := del.ExecContext(ctx, docID); err != nil {
			return fmt.Errorf("failed to delete previous segments of %s: %w", docID, err)
		}
	}

	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO segments (doc_id, par_ind, lang_pair, src, hyp, ref, run_id) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer ins.Close()

	for _, seg := range segments {
		rec := storage.NewRecord(runID, seg)
		if _, err := ins.ExecContext(ctx, rec.DocID, rec.ParInd, rec.LangPair, rec.Src, rec.Hyp, rec.Ref, rec.RunID.String()); err != nil {
			return fmt.Errorf("failed to insert segment %s: %w", seg.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit segments: %w", err)
	}

	slog.Info("Segments stored in SQLite", "count", len(segments), "run_id", runID)
	return nil
}

// CountByLangPair returns the number of stored segments for pair.
func (i *Indexer) CountByLangPair(ctx context.Context, pair string) (int, error) {
	var n int
	if err := i.db.QueryRowContext(ctx, `SELECT count(*) FROM segments WHERE lang_pair = ?`, pair).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count segments: %w", err)
	}
	return n, nil
}

func (i *Indexer) DB() *sql.DB {
	return i.db
}

func (i *Indexer) Close() error {
	return i.db.Close()
}
