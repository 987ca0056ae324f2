package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/export"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/jsonl"
	"github.com/DjordjeVuckovic/mt-score-prep/pkg/utils"
)

type xcometLine struct {
	Src string  `json:"src"`
	MT  string  `json:"mt"`
	Ref *string `json:"ref"`
}

// XCometPath is where the xcomet-xl export of pair lives under root.
func XCometPath(root, pair string) string {
	return filepath.Join(root, pair, export.XCometXL, "segments.jsonl")
}

// Inspect reads the xcomet-xl export of pair. Lengths are counted in runes
// and averaged to two decimals.
func Inspect(ctx context.Context, root, pair string) (*Inspection, error) {
	path := XCometPath(root, pair)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open segments: %w", err)
	}
	defer f.Close()

	in := &Inspection{LangPair: pair, Path: filepath.ToSlash(path)}
	var srcTotal, mtTotal int

	r := jsonl.NewReader(f)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var line xcometLine
		err := r.Decode(&line)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if in.Segments == 0 {
			in.RefsPresent = line.Ref != nil
		}
		in.Segments++
		srcTotal += utf8.RuneCountInString(line.Src)
		mtTotal += utf8.RuneCountInString(line.MT)
	}

	if in.Segments > 0 {
		in.AvgSrcLen = utils.RoundDecimal(float64(srcTotal)/float64(in.Segments), 2)
		in.AvgMTLen = utils.RoundDecimal(float64(mtTotal)/float64(in.Segments), 2)
	}
	return in, nil
}
