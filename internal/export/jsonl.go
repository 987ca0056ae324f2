package export

import (
	"context"
	"io"
	"path/filepath"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/jsonl"
)

const segmentsFile = "segments.jsonl"

// recordExporter writes segments.jsonl with one mapped record per segment.
type recordExporter struct {
	base
	// mapper is built once per export so it may capture list-wide decisions.
	mapper func(segments []domain.Segment) func(domain.Segment) any
}

func (e *recordExporter) Export(ctx context.Context, segments []domain.Segment) ([]string, error) {
	dir, ok, err := e.outputDir(segments)
	if err != nil || !ok {
		return nil, err
	}

	path := filepath.Join(dir, segmentsFile)
	e.announce(path)

	mapRecord := e.mapper(segments)
	err = writeFile(ctx, path, func(w io.Writer) error {
		jw := jsonl.NewWriter(w)
		for _, seg := range segments {
			if err := jw.Write(mapRecord(seg)); err != nil {
				return err
			}
		}
		return jw.Flush()
	})
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}
