package in_mem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage"
	"github.com/google/uuid"
)

type InMemIndexer struct {
	storageLock sync.RWMutex
	storage     map[string]storage.Record
}

func NewInMemIndexer() *InMemIndexer {
	return &InMemIndexer{
		storage: make(map[string]storage.Record),
	}
}

func (s *InMemIndexer) SaveBulk(ctx context.Context, runID uuid.UUID, segments []domain.Segment) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.storage[seg.Key()] = storage.NewRecord(runID, seg)
	}
	slog.Debug("Segments saved to in-memory storage", "count", len(segments), "total", len(s.storage))

	return nil
}

func (s *InMemIndexer) Get(docID string, parInd int) (storage.Record, bool) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	rec, ok := s.storage[domain.SegmentKey(docID, parInd)]
	return rec, ok
}

func (s *InMemIndexer) Len() int {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	return len(s.storage)
}

func (s *InMemIndexer) Close() error {
	return nil
}
