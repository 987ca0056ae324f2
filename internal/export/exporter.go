package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/langpair"
)

const (
	DefaultRoot = "language_pairs"

	emptyNotice = "List 'segments' is empty. Did not save."
)

// Exporter writes a segment list in the format one scoring tool expects.
// Export returns the paths it wrote, or none when segments is empty.
type Exporter interface {
	Name() string
	Export(ctx context.Context, segments []domain.Segment) ([]string, error)
}

type Options struct {
	Root string
	Out  io.Writer
}

type Option func(*Options)

// WithRoot sets the directory language pair folders are created under.
func WithRoot(root string) Option {
	return func(o *Options) {
		o.Root = root
	}
}

// WithOutput redirects the "Saving to" diagnostics, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Out = w
	}
}

func newOptions(opts []Option) Options {
	o := Options{
		Root: DefaultRoot,
		Out:  os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// base holds what every exporter shares: the empty guard and output routing.
type base struct {
	name string
	opts Options
}

func (b base) Name() string {
	return b.name
}

// outputDir returns <root>/<pair>/<name> for the pair of the first segment.
// ok is false when there is nothing to export.
func (b base) outputDir(segments []domain.Segment) (dir string, ok bool, err error) {
	if len(segments) == 0 {
		fmt.Fprintln(b.opts.Out, emptyNotice)
		return "", false, nil
	}

	pair := langpair.FromDocID(segments[0].DocID)
	if err := validatePair(pair); err != nil {
		return "", false, err
	}
	return filepath.Join(b.opts.Root, pair, b.name), true, nil
}

// validatePair rejects pairs that would not map to a single directory below root.
func validatePair(pair string) error {
	if !langpair.IsDirName(pair) {
		return apperr.NewValidation(fmt.Sprintf("language pair %q is not a valid directory name", pair))
	}
	return nil
}

func (b base) announce(path string) {
	fmt.Fprintf(b.opts.Out, "Saving to %s\n", filepath.ToSlash(path))
}
