package segment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/corpus"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/hypothesis"
	"github.com/DjordjeVuckovic/mt-score-prep/pkg/stringsutil"
)

// Builder joins hypotheses with the corpus and splits them into segments.
type Builder struct {
	corpus *corpus.Index
	out    io.Writer
}

type Option func(*Builder)

// WithOutput redirects the count diagnostics, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(b *Builder) {
		b.out = w
	}
}

func NewBuilder(idx *corpus.Index, opts ...Option) *Builder {
	b := &Builder{
		corpus: idx,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build consumes r and returns segments in hypothesis-then-paragraph order.
// A hypothesis whose doc_id is missing from the corpus aborts the build.
func (b *Builder) Build(ctx context.Context, r *hypothesis.Reader) ([]domain.Segment, domain.BuildStats, error) {
	var (
		segments []domain.Segment
		stats    domain.BuildStats
	)

	for {
		h, err := r.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read hypotheses: %w", err)
		}
		stats.Total++

		if hypothesis.IsFailed(h) {
			stats.Skipped++
			slog.Debug("Skipping failed hypothesis", "doc_id", h.DocID, "line", r.Line())
			continue
		}

		doc, err := b.corpus.Lookup(h.DocID)
		if err != nil {
			return nil, stats, fmt.Errorf("line %d: %w", r.Line(), err)
		}

		segments = append(segments, Split(doc, h.Text)...)
	}
	stats.Segments = len(segments)

	fmt.Fprintf(b.out, "Total hypothesis lines: %d\n", stats.Total)
	fmt.Fprintf(b.out, "Built segments: %d  | skipped FAILED: %d\n", stats.Segments, stats.Skipped)

	return segments, stats, nil
}

// Split aligns the paragraphs of doc and hyp positionally. When the
// paragraph counts differ the result is truncated to the shortest list.
func Split(doc domain.Document, hyp string) []domain.Segment {
	srcPars := stringsutil.SplitParagraphs(doc.SrcText)
	hypPars := stringsutil.SplitParagraphs(hyp)

	var refPars []string
	if doc.RefText != "" {
		refPars = stringsutil.SplitParagraphs(doc.RefText)
	} else {
		refPars = make([]string, len(srcPars))
	}

	n := min(len(srcPars), len(hypPars), len(refPars))
	if n != len(srcPars) || n != len(hypPars) || n != len(refPars) {
		slog.Warn("Paragraph counts differ, truncating to shortest",
			"doc_id", doc.DocID,
			"src", len(srcPars),
			"hyp", len(hypPars),
			"ref", len(refPars),
			"kept", n,
		)
	}

	segments := make([]domain.Segment, 0, n)
	for i := range n {
		segments = append(segments, domain.Segment{
			DocID:  doc.DocID,
			ParInd: i,
			Src:    srcPars[i],
			Hyp:    hypPars[i],
			Ref:    refPars[i],
		})
	}
	return segments
}
