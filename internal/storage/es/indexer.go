package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/conflicts"
	"github.com/google/uuid"
)

type Indexer struct {
	client       *elasticsearch.TypedClient
	indexName    string
	indexBuilder *IndexBuilder
}

func NewIndexer(ctx context.Context, config ClientConfig) (*Indexer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Elasticsearch config: %w", err)
	}
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	idx := &Indexer{
		client:       client,
		indexName:    config.IndexName,
		indexBuilder: NewIndexBuilder(),
	}

	if err := idx.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return idx, nil
}

// SaveBulk replaces every segment of the documents in segments. Existing
// segments of those doc_ids are deleted first so a document that now splits
// into fewer paragraphs keeps no stale doc_id#N entries.
func (e *Indexer) SaveBulk(ctx context.Context, runID uuid.UUID, segments []domain.Segment) error {
	if len(segments) == 0 {
		return nil
	}

	if err := e.deleteDocs(ctx, storage.DocIDs(segments)); err != nil {
		return err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.indexName,
		Client:        e.client,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
		Refresh:       "wait_for",
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var successful, failed atomic.Int64

	for _, seg := range segments {
		doc := e.indexBuilder.mapToESDocument(runID, seg)

		docBytes, err := json.Marshal(doc)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", seg.Key())
			failed.Add(1)
			continue
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: seg.Key(),
				Body:       bytes.NewReader(docBytes),
				OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
					successful.Add(1)
				},
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					failed.Add(1)
					if err != nil {
						slog.Error("bulk index error", "error", err, "id", item.DocumentID)
					} else {
						slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
					}
				},
			},
		)
		if err != nil {
			failed.Add(1)
			slog.Error("failed to add document to bulk indexer", "error", err, "id", seg.Key())
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("Bulk indexing completed",
		"successful", successful.Load(),
		"failed", failed.Load(),
		"total", len(segments),
		"index", e.indexName,
		"run_id", runID,
	)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("failed to index %d out of %d segments", n, len(segments))
	}
	return nil
}

func (e *Indexer) deleteDocs(ctx context.Context, docIDs []string) error {
	res, err := e.client.DeleteByQuery(e.indexName).
		Query(docIDsQuery(docIDs)).
		Conflicts(conflicts.Proceed).
		Refresh(true).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete previous segments: %w", err)
	}
	if res.Deleted != nil && *res.Deleted > 0 {
		slog.Debug("Deleted previous segments", "count", *res.Deleted, "documents", len(docIDs), "index", e.indexName)
	}
	return nil
}

func docIDsQuery(docIDs []string) *types.Query {
	values := make([]types.FieldValue, len(docIDs))
	for i, id := range docIDs {
		values[i] = id
	}
	return &types.Query{
		Terms: &types.TermsQuery{
			TermsQuery: map[string]types.TermsQueryField{
				"doc_id": values,
			},
		},
	}
}

func (e *Indexer) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		slog.Info("Index already exists", "index", e.indexName)
		return nil
	}

	settings := e.indexBuilder.buildSettings()
	mappings := e.indexBuilder.buildMapping()

	createRes, err := e.client.Indices.Create(e.indexName).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", e.indexName)
	return nil
}

// CountByLangPair returns the number of indexed segments for pair.
func (e *Indexer) CountByLangPair(ctx context.Context, pair string) (int64, error) {
	res, err := e.client.Count().
		Index(e.indexName).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"lang_pair": {Value: pair},
			},
		}).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count segments: %w", err)
	}
	return res.Count, nil
}

func (e *Indexer) Close() error {
	return nil
}
