package hypothesis

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string) ([]domain.Hypothesis, error) {
	t.Helper()
	r := NewReader(strings.NewReader(input))

	var out []domain.Hypothesis
	for {
		h, err := r.Next(t.Context())
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, h)
	}
}

func TestReader_Next(t *testing.T) {
	input := strings.Join([]string{
		`{"doc_id":"en-ja_#1","hypothesis":"Bonjour.\n\nMonde."}`,
		`{"doc_id":"en-ja_#2"}`,
		`{"doc_id":"en-ja_#3","hypothesis":null}`,
	}, "\n")

	got, err := readAll(t, input)
	require.NoError(t, err)

	assert.Equal(t, []domain.Hypothesis{
		{DocID: "en-ja_#1", Text: "Bonjour.\n\nMonde."},
		{DocID: "en-ja_#2", Text: ""},
		{DocID: "en-ja_#3", Text: ""},
	}, got)
}

func TestReader_Next_MissingDocID(t *testing.T) {
	_, err := readAll(t, `{"doc_id":"a","hypothesis":"x"}`+"\n"+`{"hypothesis":"y"}`)

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReader_Next_MalformedJSON(t *testing.T) {
	got, err := readAll(t, `{"doc_id":"a","hypothesis":"x"}`+"\n"+`not json`)

	var le *jsonl.LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Line)
	assert.Len(t, got, 1)
}

func TestIsFailed(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{text: "FAILED: timeout", want: true},
		{text: "FAILED", want: true},
		{text: "failed: lower case", want: false},
		{text: " FAILED", want: false},
		{text: "The request FAILED", want: false},
		{text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFailed(domain.Hypothesis{Text: tt.text}))
		})
	}
}
