package pg

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	pkgtesting "github.com/DjordjeVuckovic/mt-score-prep/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndexer(t *testing.T) *Indexer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	container := pkgtesting.NewPGContainer(ctx, t, nil)

	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: container.ConnString})
	require.NoError(t, err)

	idx, err := NewIndexer(ctx, pool)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestIndexer_SaveBulk(t *testing.T) {
	idx := newTestIndexer(t)
	ctx := t.Context()

	segs := []domain.Segment{
		{DocID: "en-ja_#1", ParInd: 0, Src: "Hello.", Hyp: "こんにちは。"},
		{DocID: "en-ja_#1", ParInd: 1, Src: "World.", Hyp: "世界。"},
		{DocID: "en-ja_#2", ParInd: 0, Src: "Bye.", Hyp: "さようなら。", Ref: "じゃあね。"},
	}
	require.NoError(t, idx.SaveBulk(ctx, uuid.New(), segs))

	n, err := idx.CountByLangPair(ctx, "en-ja")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// A re-run that now yields fewer paragraphs for doc 1 replaces its rows.
	runID := uuid.New()
	require.NoError(t, idx.SaveBulk(ctx, runID, segs[:1]))

	n, err = idx.CountByLangPair(ctx, "en-ja")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var stored uuid.UUID
	err = idx.pool.GetConn().QueryRow(ctx,
		`SELECT run_id FROM segments WHERE doc_id = $1 AND par_ind = 0`, "en-ja_#1").Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, runID, stored)
}

func TestIndexer_SaveBulk_Empty(t *testing.T) {
	idx := newTestIndexer(t)

	assert.NoError(t, idx.SaveBulk(t.Context(), uuid.New(), nil))
}

func TestApplySchema(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	container := pkgtesting.NewPGContainer(ctx, t, ApplySchema)

	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: container.ConnString})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	var table *string
	require.NoError(t, pool.GetConn().QueryRow(ctx, `SELECT to_regclass('segments')::text`).Scan(&table))
	require.NotNil(t, table)
	assert.Equal(t, "segments", *table)

	// The indexer reapplies the schema on top of the prepared database.
	idx, err := NewIndexer(ctx, pool)
	require.NoError(t, err)
	assert.NoError(t, idx.SaveBulk(ctx, uuid.New(), []domain.Segment{{DocID: "en-ja_#1", Src: "s", Hyp: "h"}}))
}

func TestIndexer_EnsureSchema_Idempotent(t *testing.T) {
	idx := newTestIndexer(t)

	assert.NoError(t, idx.EnsureSchema(t.Context()))
}
