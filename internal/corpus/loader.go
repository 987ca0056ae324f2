package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/jsonl"
)

type record struct {
	DocID   *string         `json:"doc_id"`
	SrcText string          `json:"src_text"`
	Refs    json.RawMessage `json:"refs"`
}

type references struct {
	RefA *reference `json:"refA"`
}

type reference struct {
	Ref json.RawMessage `json:"ref"`
}

// Loader reads a record-per-line reference corpus.
type Loader struct {
	reader io.Reader
}

func NewLoader(reader io.Reader) *Loader {
	return &Loader{
		reader: reader,
	}
}

// LoadFile opens path and loads it into an Index.
func LoadFile(ctx context.Context, path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	return NewLoader(f).Load(ctx)
}

func (l *Loader) Load(ctx context.Context) (*Index, error) {
	idx := NewIndex()
	r := jsonl.NewReader(l.reader, jsonl.WithSkipBlankLines())
	records := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var rec record
		err := r.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse corpus: %w", err)
		}
		if rec.DocID == nil {
			return nil, apperr.NewValidationWrap("parse corpus",
				fmt.Errorf("line %d: doc_id is required", r.Line()))
		}

		ref, dropped := refText(rec.Refs)
		if dropped {
			slog.Warn("Reference is not a string, treating document as unreferenced",
				"doc_id", *rec.DocID,
				"line", r.Line(),
				"ref", string(rec.Refs),
			)
		}

		records++
		idx.Put(domain.Document{
			DocID:   *rec.DocID,
			SrcText: rec.SrcText,
			RefText: ref,
		})
	}

	if duplicates := records - idx.Len(); duplicates > 0 {
		slog.Warn("Corpus contains duplicate doc_ids, last record wins", "duplicates", duplicates)
	}
	slog.Debug("Corpus loaded", "records", records, "documents", idx.Len())

	return idx, nil
}

// refText extracts refs.refA.ref, falling back to "" for any other shape.
// dropped is true when refA.ref is present but not a string.
func refText(raw json.RawMessage) (text string, dropped bool) {
	if len(raw) == 0 {
		return "", false
	}
	var refs references
	if err := json.Unmarshal(raw, &refs); err != nil {
		return "", false
	}
	if refs.RefA == nil || len(refs.RefA.Ref) == 0 {
		return "", false
	}
	if err := json.Unmarshal(refs.RefA.Ref, &text); err != nil || string(refs.RefA.Ref) == "null" {
		return "", true
	}
	return text, false
}
