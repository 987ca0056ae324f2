package main

import (
	"log/slog"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/export"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/pipeline"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/runfile"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage/factory"
	"github.com/DjordjeVuckovic/mt-score-prep/pkg/apis"
	"github.com/DjordjeVuckovic/mt-score-prep/pkg/config/env"
)

type PrepareConfig struct {
	pipeline.Config
	Exporters []string
	factory.StorageConfig
}

// Load resolves each setting from the command line, then the run file,
// then the environment, then the built-in default.
func (c *PrepareCmd) Load() (*PrepareConfig, error) {
	run := &apis.ScorePrep{}
	name := "score-prep"
	if c.Config != "" {
		loaded, err := runfile.LoadFile(c.Config)
		if err != nil {
			slog.Error("Failed to load run file", "path", c.Config, "error", err)
			return nil, err
		}
		run = loaded
		name = run.Metadata.Name
	}

	exporters := c.Exporters
	if len(exporters) == 0 {
		exporters = run.Exporters
	}
	if len(exporters) == 0 {
		exporters = env.List("EXPORTERS")
	}
	if len(exporters) == 0 {
		exporters = export.Names
	}

	storageType := firstNonEmpty(c.Storage, run.Storage, env.GetOr("STORAGE_TYPE", ""))
	storageCfg, err := factory.Resolve(storage.Type(storageType))
	if err != nil {
		return nil, err
	}

	return &PrepareConfig{
		Config: pipeline.Config{
			Name:           name,
			CorpusPath:     firstNonEmpty(c.Corpus, run.Corpus, env.GetOr("CORPUS_PATH", pipeline.DefaultCorpusPath)),
			HypothesisPath: firstNonEmpty(c.Hypotheses, run.Hypotheses, env.GetOr("HYPOTHESIS_PATH", pipeline.DefaultHypothesisPath)),
			OutputRoot:     outputRoot(firstNonEmpty(c.OutputRoot, run.OutputRoot)),
		},
		Exporters:     exporters,
		StorageConfig: *storageCfg,
	}, nil
}

// outputRoot applies the environment and default to a root not set by flag or run file.
func outputRoot(root string) string {
	if root != "" {
		return root
	}
	return env.GetOr("OUTPUT_ROOT", export.DefaultRoot)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
