package hypothesis

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/jsonl"
)

type record struct {
	DocID      *string `json:"doc_id"`
	Hypothesis *string `json:"hypothesis"`
}

// Reader streams hypothesis records, one JSON object per line.
type Reader struct {
	dec *jsonl.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: jsonl.NewReader(r)}
}

// Next returns the next hypothesis or io.EOF. A missing or null
// hypothesis field reads as the empty string.
func (r *Reader) Next(ctx context.Context) (domain.Hypothesis, error) {
	if err := ctx.Err(); err != nil {
		return domain.Hypothesis{}, err
	}

	var rec record
	if err := r.dec.Decode(&rec); err != nil {
		return domain.Hypothesis{}, err
	}
	if rec.DocID == nil {
		return domain.Hypothesis{}, apperr.NewValidationWrap("parse hypotheses",
			fmt.Errorf("line %d: doc_id is required", r.dec.Line()))
	}

	h := domain.Hypothesis{DocID: *rec.DocID}
	if rec.Hypothesis != nil {
		h.Text = *rec.Hypothesis
	}
	return h, nil
}

// Line returns the number of records consumed so far.
func (r *Reader) Line() int {
	return r.dec.Line()
}

// IsFailed reports whether the upstream translation of h failed.
func IsFailed(h domain.Hypothesis) bool {
	return strings.HasPrefix(h.Text, domain.FailedMarker)
}
