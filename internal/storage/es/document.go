package es

import (
	"time"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
)

// SegmentDocument is the indexed shape of a segment.
type SegmentDocument struct {
	DocID     string    `json:"doc_id"`
	ParInd    int       `json:"par_ind"`
	LangPair  string    `json:"lang_pair"`
	Src       string    `json:"src"`
	Hyp       string    `json:"hyp"`
	Ref       string    `json:"ref"`
	HasRef    bool      `json:"has_ref"`
	RunID     string    `json:"run_id"`
	IndexedAt time.Time `json:"indexed_at"`
}

type IndexBuilder struct {
	analyzer string
}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{
		analyzer: "multilingual_analyzer",
	}
}

func (b *IndexBuilder) mapToESDocument(runID uuid.UUID, seg domain.Segment) SegmentDocument {
	rec := storage.NewRecord(runID, seg)
	return SegmentDocument{
		DocID:     rec.DocID,
		ParInd:    rec.ParInd,
		LangPair:  rec.LangPair,
		Src:       rec.Src,
		Hyp:       rec.Hyp,
		Ref:       rec.Ref,
		HasRef:    rec.Ref != "",
		RunID:     rec.RunID.String(),
		IndexedAt: time.Now(),
	}
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				b.analyzer: types.StandardAnalyzer{
					Stopwords: []string{"_none_"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"doc_id":     types.NewKeywordProperty(),
			"par_ind":    types.NewIntegerNumberProperty(),
			"lang_pair":  types.NewKeywordProperty(),
			"src":        b.textProperty(),
			"hyp":        b.textProperty(),
			"ref":        b.textProperty(),
			"has_ref":    types.NewBooleanProperty(),
			"run_id":     types.NewKeywordProperty(),
			"indexed_at": types.NewDateProperty(),
		},
	}
}

func (b *IndexBuilder) textProperty() types.Property {
	textProp := types.NewTextProperty()
	textProp.Analyzer = &b.analyzer
	return textProp
}
