package runfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
	"github.com/DjordjeVuckovic/mt-score-prep/pkg/apis"
	"gopkg.in/yaml.v3"
)

type YAMLLoader struct {
	reader io.Reader
}

func NewYAMLLoader(reader io.Reader) *YAMLLoader {
	return &YAMLLoader{
		reader: reader,
	}
}

// Load decodes a single ScorePrep document. Unknown keys are rejected.
func (l *YAMLLoader) Load(validate bool) (*apis.ScorePrep, error) {
	decoder := yaml.NewDecoder(l.reader)
	decoder.KnownFields(true)

	var run apis.ScorePrep
	if err := decoder.Decode(&run); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperr.NewValidation("run file is empty")
		}
		return nil, apperr.NewValidationWrap("invalid run file", err)
	}
	if validate {
		if err := run.Validate(); err != nil {
			return nil, apperr.NewValidationWrap("invalid run file", err)
		}
	}
	return &run, nil
}

// LoadFile opens path and loads a validated run file from it.
func LoadFile(path string) (*apis.ScorePrep, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run file: %w", err)
	}
	defer f.Close()

	return NewYAMLLoader(f).Load(true)
}
