package pg

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"sort"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.up.sql
var migrations embed.FS

var segmentColumns = []string{"doc_id", "par_ind", "lang_pair", "src", "hyp", "ref", "run_id"}

type Indexer struct {
	pool *ConnectionPool
}

// NewIndexer applies the segment schema and returns an indexer owning pool.
func NewIndexer(ctx context.Context, pool *ConnectionPool) (*Indexer, error) {
	idx := &Indexer{pool: pool}
	if err := idx.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (i *Indexer) EnsureSchema(ctx context.Context) error {
	return ApplySchema(ctx, i.pool.conn)
}

// ApplySchema runs every embedded up migration in name order. The migrations
// are idempotent, so it is safe against an existing schema.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	files, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		stmt, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(stmt)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}
	slog.Debug("Segment schema applied", "migrations", len(names))
	return nil
}

// SaveBulk replaces every row of the documents in segments inside one
// transaction, then bulk copies the new rows.
func (i *Indexer) SaveBulk(ctx context.Context, runID uuid.UUID, segments []domain.Segment) error {
	if len(segments) == 0 {
		return nil
	}

	rows := make([][]any, len(segments))
	for n, seg := range segments {
		rec := storage.NewRecord(runID, seg)
		rows[n] = []any{rec.DocID, rec.ParInd, rec.LangPair, rec.Src, rec.Hyp, rec.Ref, rec.RunID}
	}

	tx, err := i.pool.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM segments WHERE doc_id = ANY($1)`, storage.DocIDs(segments))
	if err != nil {
		return fmt.Errorf("failed to delete previous segments: %w", err)
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"segments"}, segmentColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to bulk insert segments: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit segments: %w", err)
	}

	slog.Info("Segments stored in PostgreSQL",
		"copied", copied,
		"replaced", tag.RowsAffected(),
		"run_id", runID,
	)
	return nil
}

// CountByLangPair returns the number of stored segments for pair.
func (i *Indexer) CountByLangPair(ctx context.Context, pair string) (int, error) {
	var n int
	err := i.pool.conn.QueryRow(ctx, `SELECT count(*) FROM segments WHERE lang_pair = $1`, pair).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count segments: %w", err)
	}
	return n, nil
}

func (i *Indexer) Close() error {
	i.pool.Close()
	return nil
}
