package segment

import (
	"bytes"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/corpus"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/hypothesis"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndex(docs ...domain.Document) *corpus.Index {
	idx := corpus.NewIndex()
	for _, d := range docs {
		idx.Put(d)
	}
	return idx
}

func build(t *testing.T, idx *corpus.Index, hyps string) ([]domain.Segment, domain.BuildStats, string, error) {
	t.Helper()
	var out bytes.Buffer
	b := NewBuilder(idx, WithOutput(&out))
	segs, stats, err := b.Build(t.Context(), hypothesis.NewReader(strings.NewReader(hyps)))
	return segs, stats, out.String(), err
}

func TestBuilder_Build_Scenario(t *testing.T) {
	idx := newIndex(domain.Document{DocID: "en-ja_#1", SrcText: "Hello.\n\nWorld."})

	segs, stats, out, err := build(t, idx, `{"doc_id":"en-ja_#1","hypothesis":"Bonjour.\n\nMonde."}`)
	require.NoError(t, err)

	assert.Equal(t, []domain.Segment{
		{DocID: "en-ja_#1", ParInd: 0, Src: "Hello.", Hyp: "Bonjour.", Ref: ""},
		{DocID: "en-ja_#1", ParInd: 1, Src: "World.", Hyp: "Monde.", Ref: ""},
	}, segs)
	assert.Equal(t, domain.BuildStats{Total: 1, Skipped: 0, Segments: 2}, stats)
	assert.Equal(t, "Total hypothesis lines: 1\nBuilt segments: 2  | skipped FAILED: 0\n", out)
}

func TestBuilder_Build_SkipsFailed(t *testing.T) {
	idx := newIndex(domain.Document{DocID: "a", SrcText: "s"})

	segs, stats, out, err := build(t, idx, strings.Join([]string{
		`{"doc_id":"x","hypothesis":"FAILED: timeout"}`,
		`{"doc_id":"a","hypothesis":"h"}`,
	}, "\n"))
	require.NoError(t, err)

	assert.Len(t, segs, 1)
	assert.Equal(t, "a", segs[0].DocID)
	assert.Equal(t, domain.BuildStats{Total: 2, Skipped: 1, Segments: 1}, stats)
	assert.Contains(t, out, "skipped FAILED: 1")
}

func TestBuilder_Build_OnlyFailed(t *testing.T) {
	segs, stats, _, err := build(t, newIndex(), `{"doc_id":"x","hypothesis":"FAILED: timeout"}`)
	require.NoError(t, err)

	assert.Empty(t, segs)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Segments)
}

func TestBuilder_Build_UnknownDocIsFatal(t *testing.T) {
	idx := newIndex(domain.Document{DocID: "a", SrcText: "s"})

	_, _, out, err := build(t, idx, `{"doc_id":"a","hypothesis":"h"}`+"\n"+`{"doc_id":"b","hypothesis":"h"}`)

	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "b", nf.Key)
	assert.Contains(t, err.Error(), "line 2")
	assert.Empty(t, out)
}

func TestBuilder_Build_MalformedLineIsFatal(t *testing.T) {
	idx := newIndex(domain.Document{DocID: "a", SrcText: "s"})

	_, _, _, err := build(t, idx, `{"doc_id":"a","hypothesis":"h"}`+"\n"+`{broken`)

	var le *jsonl.LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Line)
}

func TestBuilder_Build_PreservesHypothesisOrder(t *testing.T) {
	idx := newIndex(
		domain.Document{DocID: "b", SrcText: "b1\n\nb2"},
		domain.Document{DocID: "a", SrcText: "a1"},
	)

	segs, _, _, err := build(t, idx, `{"doc_id":"b","hypothesis":"B1\n\nB2"}`+"\n"+`{"doc_id":"a","hypothesis":"A1"}`)
	require.NoError(t, err)

	var keys []string
	for _, s := range segs {
		keys = append(keys, s.Key())
	}
	assert.Equal(t, []string{"b#0", "b#1", "a#0"}, keys)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		doc      domain.Document
		hyp      string
		wantLen  int
		wantRefs []string
	}{
		{
			name:     "aligned with reference",
			doc:      domain.Document{DocID: "d", SrcText: "s1\n\ns2", RefText: "r1\n\nr2"},
			hyp:      "h1\n\nh2",
			wantLen:  2,
			wantRefs: []string{"r1", "r2"},
		},
		{
			name:     "no reference pads with empty strings",
			doc:      domain.Document{DocID: "d", SrcText: "s1\n\ns2\n\ns3"},
			hyp:      "h1\n\nh2\n\nh3",
			wantLen:  3,
			wantRefs: []string{"", "", ""},
		},
		{
			name:     "hypothesis shorter truncates",
			doc:      domain.Document{DocID: "d", SrcText: "s1\n\ns2\n\ns3", RefText: "r1\n\nr2\n\nr3"},
			hyp:      "h1",
			wantLen:  1,
			wantRefs: []string{"r1"},
		},
		{
			name:     "reference shorter truncates",
			doc:      domain.Document{DocID: "d", SrcText: "s1\n\ns2", RefText: "r1"},
			hyp:      "h1\n\nh2",
			wantLen:  1,
			wantRefs: []string{"r1"},
		},
		{
			name:     "source shorter truncates",
			doc:      domain.Document{DocID: "d", SrcText: "s1"},
			hyp:      "h1\n\nh2\n\nh3",
			wantLen:  1,
			wantRefs: []string{""},
		},
		{
			name:     "empty hypothesis still yields one segment",
			doc:      domain.Document{DocID: "d", SrcText: "s1"},
			hyp:      "",
			wantLen:  1,
			wantRefs: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Split(tt.doc, tt.hyp)
			require.Len(t, segs, tt.wantLen)

			var refs []string
			for i, s := range segs {
				assert.Equal(t, i, s.ParInd)
				assert.Equal(t, tt.doc.DocID, s.DocID)
				refs = append(refs, s.Ref)
			}
			assert.Equal(t, tt.wantRefs, refs)
		})
	}
}

func TestSplit_StripsTrailingWhitespaceOnly(t *testing.T) {
	doc := domain.Document{DocID: "d", SrcText: "  lead\ninner  \n\nnext\t"}

	segs := Split(doc, "  h1 \n\nh2\n")
	require.Len(t, segs, 2)

	assert.Equal(t, "  lead\ninner", segs[0].Src)
	assert.Equal(t, "  h1", segs[0].Hyp)
	assert.Equal(t, "next", segs[1].Src)
	assert.Equal(t, "h2", segs[1].Hyp)
}
