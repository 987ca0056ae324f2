package export

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/pkg/stringsutil"
)

const (
	gembaSrcFile = "src.txt"
	gembaHypFile = "hyp.txt"
)

type gembaExporter struct {
	base
}

// NewGemba writes line-aligned src.txt and hyp.txt files for GEMBA.
func NewGemba(opts ...Option) Exporter {
	return &gembaExporter{base: base{name: Gemba, opts: newOptions(opts)}}
}

func (e *gembaExporter) Export(ctx context.Context, segments []domain.Segment) ([]string, error) {
	dir, ok, err := e.outputDir(segments)
	if err != nil || !ok {
		return nil, err
	}

	src := make([]string, 0, len(segments))
	hyp := make([]string, 0, len(segments))
	for _, s := range segments {
		src = append(src, stringsutil.FlattenNewlines(s.Src))
		hyp = append(hyp, stringsutil.FlattenNewlines(s.Hyp))
	}

	srcPath := filepath.Join(dir, gembaSrcFile)
	hypPath := filepath.Join(dir, gembaHypFile)
	e.announce(srcPath)
	e.announce(hypPath)

	if err := writeLines(ctx, srcPath, src); err != nil {
		return nil, err
	}
	if err := writeLines(ctx, hypPath, hyp); err != nil {
		return []string{srcPath}, err
	}
	return []string{srcPath, hypPath}, nil
}

// writeLines joins lines with "\n" and writes no trailing newline.
func writeLines(ctx context.Context, path string, lines []string) error {
	return writeFile(ctx, path, func(w io.Writer) error {
		_, err := io.WriteString(w, strings.Join(lines, "\n"))
		return err
	})
}
