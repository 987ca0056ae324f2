package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/corpus"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/export"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/hypothesis"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/langpair"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/manifest"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/segment"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage"
	"github.com/google/uuid"
)

const (
	DefaultCorpusPath     = "wmt25-genmt.jsonl"
	DefaultHypothesisPath = "OPUS-en-ja.jsonl"
)

type Config struct {
	Name           string
	CorpusPath     string
	HypothesisPath string
	OutputRoot     string
}

// Result summarises one run.
type Result struct {
	LangPair string
	Stats    domain.BuildStats
	Files    []string
	Manifest string
	Stored   bool
}

type Pipeline struct {
	config    Config
	exporters []string
	indexer   storage.Indexer
	manifest  bool
	out       io.Writer
	runID     uuid.UUID
}

type Option func(*Pipeline)

// WithExporters selects exporters by name, run in the given order.
func WithExporters(names ...string) Option {
	return func(p *Pipeline) {
		p.exporters = names
	}
}

// WithIndexer stores built segments in idx. The caller owns idx.
func WithIndexer(idx storage.Indexer) Option {
	return func(p *Pipeline) {
		p.indexer = idx
	}
}

func WithManifest(enabled bool) Option {
	return func(p *Pipeline) {
		p.manifest = enabled
	}
}

// WithOutput redirects the counters and "Saving to" lines, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.out = w
	}
}

func WithRunID(id uuid.UUID) Option {
	return func(p *Pipeline) {
		p.runID = id
	}
}

func New(cfg Config, opts ...Option) *Pipeline {
	if cfg.Name == "" {
		cfg.Name = "score-prep"
	}
	if cfg.CorpusPath == "" {
		cfg.CorpusPath = DefaultCorpusPath
	}
	if cfg.HypothesisPath == "" {
		cfg.HypothesisPath = DefaultHypothesisPath
	}
	if cfg.OutputRoot == "" {
		cfg.OutputRoot = export.DefaultRoot
	}

	p := &Pipeline{
		config:    cfg,
		exporters: export.Names,
		manifest:  true,
		out:       os.Stdout,
		runID:     uuid.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	log := slog.With("pipeline", p.config.Name, "run_id", p.runID)
	log.Info("Starting pipeline run",
		"corpus", p.config.CorpusPath,
		"hypotheses", p.config.HypothesisPath,
		"output_root", p.config.OutputRoot,
		"exporters", p.exporters,
		"storage", p.indexer != nil,
	)

	res, err := p.run(ctx, log)

	log.Info("Pipeline run completed",
		"duration", time.Since(start),
		"error", err,
	)
	return res, err
}

func (p *Pipeline) run(ctx context.Context, log *slog.Logger) (*Result, error) {
	exporters, err := export.NewSet(p.exporters,
		export.WithRoot(p.config.OutputRoot),
		export.WithOutput(p.out),
	)
	if err != nil {
		return nil, err
	}

	idx, err := corpus.LoadFile(ctx, p.config.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", p.config.CorpusPath, err)
	}
	log.Info("Corpus loaded", "documents", idx.Len())

	segments, stats, err := p.build(ctx, idx)
	if err != nil {
		return nil, err
	}

	res := &Result{Stats: stats}
	if len(segments) > 0 {
		res.LangPair = langpair.FromDocID(segments[0].DocID)
		if !langpair.IsRecognized(res.LangPair) {
			log.Warn("Language pair is not a recognised WMT25 pair", "lang_pair", res.LangPair)
		}
	}

	for _, e := range exporters {
		files, err := e.Export(ctx, segments)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", e.Name(), err)
		}
		log.Debug("Exporter finished", "exporter", e.Name(), "files", len(files))
		res.Files = append(res.Files, files...)
	}

	if p.indexer != nil && len(segments) > 0 {
		if err := p.indexer.SaveBulk(ctx, p.runID, segments); err != nil {
			return nil, fmt.Errorf("store segments: %w", err)
		}
		res.Stored = true
		log.Info("Segments stored", "count", len(segments))
	}

	if p.manifest && len(res.Files) > 0 {
		dir := filepath.Join(p.config.OutputRoot, res.LangPair)
		m, err := manifest.Build(dir, res.LangPair, stats, res.Files)
		if err != nil {
			return nil, fmt.Errorf("build manifest: %w", err)
		}
		prev, err := manifest.Read(dir)
		switch {
		case err == nil:
			m = manifest.Merge(prev, m)
		case !errors.Is(err, os.ErrNotExist):
			log.Warn("Existing manifest unreadable, replacing it", "error", err)
		}
		if res.Manifest, err = manifest.Write(m, dir); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func (p *Pipeline) build(ctx context.Context, idx *corpus.Index) ([]domain.Segment, domain.BuildStats, error) {
	f, err := os.Open(p.config.HypothesisPath)
	if err != nil {
		return nil, domain.BuildStats{}, fmt.Errorf("open hypotheses: %w", err)
	}
	defer f.Close()

	b := segment.NewBuilder(idx, segment.WithOutput(p.out))
	return b.Build(ctx, hypothesis.NewReader(f))
}
