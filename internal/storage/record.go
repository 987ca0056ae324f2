package storage

import (
	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/langpair"
	"github.com/google/uuid"
)

// Record is a stored segment together with the run that produced it.
type Record struct {
	domain.Segment
	LangPair string    `json:"lang_pair"`
	RunID    uuid.UUID `json:"run_id"`
}

func NewRecord(runID uuid.UUID, seg domain.Segment) Record {
	return Record{
		Segment:  seg,
		LangPair: langpair.FromDocID(seg.DocID),
		RunID:    runID,
	}
}

// DocIDs returns the distinct doc_ids of segments in first-seen order.
func DocIDs(segments []domain.Segment) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range segments {
		if !seen[s.DocID] {
			seen[s.DocID] = true
			ids = append(ids, s.DocID)
		}
	}
	return ids
}
