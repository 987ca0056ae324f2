package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/langpair"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/manifest"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/pipeline"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/report"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/storage/factory"
	"github.com/DjordjeVuckovic/mt-score-prep/pkg/apis"
	"github.com/DjordjeVuckovic/mt-score-prep/pkg/schema"
)

type PrepareCmd struct {
	Config     string   `name:"config" short:"c" type:"existingfile" help:"YAML run file (kind: ScorePrep)."`
	Corpus     string   `name:"corpus" help:"Corpus JSONL path."`
	Hypotheses string   `name:"hypotheses" help:"Hypotheses JSONL path."`
	OutputRoot string   `name:"output-root" help:"Directory language pair folders are written under."`
	Exporters  []string `name:"exporters" sep:"," help:"Exporters to run, in order. Manifest entries of other exporters are kept."`
	Storage    string   `name:"storage" help:"Segment storage: in_mem, sqlite, pg or es."`
	NoManifest bool     `name:"no-manifest" help:"Do not write manifest.json."`
	Summary    bool     `name:"summary" help:"Print a run summary table."`
	JSON       bool     `name:"json" help:"Print the run summary as JSON."`
}

func (c *PrepareCmd) Run(g *Globals) error {
	cfg, err := c.Load()
	if err != nil {
		return err
	}

	opts := []pipeline.Option{
		pipeline.WithExporters(cfg.Exporters...),
		pipeline.WithManifest(!c.NoManifest),
		pipeline.WithOutput(g.Out),
		pipeline.WithRunID(g.RunID),
	}

	if cfg.StorageConfig.Enabled() {
		slog.Info("Creating indexer", "storageType", cfg.StorageConfig.Type)
		idx, err := factory.NewIndexer(g.Ctx, cfg.StorageConfig)
		if err != nil {
			return fmt.Errorf("failed to create indexer: %w", err)
		}
		defer func() {
			if err := idx.Close(); err != nil {
				slog.Warn("Failed to close indexer", "error", err)
			}
		}()
		opts = append(opts, pipeline.WithIndexer(idx))
	}

	res, err := pipeline.New(cfg.Config, opts...).Run(g.Ctx)
	if err != nil {
		return err
	}

	summary := &report.Summary{
		RunID:    g.RunID.String(),
		LangPair: res.LangPair,
		Stats:    res.Stats,
		Files:    res.Files,
		Manifest: res.Manifest,
		Stored:   res.Stored,
	}
	switch {
	case c.JSON:
		return report.WriteJSON(summary, g.Out)
	case c.Summary:
		report.WriteSummary(summary, g.Out)
	}
	return nil
}

type PairsCmd struct{}

func (c *PairsCmd) Run(g *Globals) error {
	report.WritePairs(langpair.Recognized, g.Out)
	return nil
}

type InspectCmd struct {
	Args       []string `arg:"" optional:"" name:"pair" help:"Language pair, e.g. en-ja_JP."`
	OutputRoot string   `name:"output-root" env:"OUTPUT_ROOT" default:"language_pairs" help:"Directory language pair folders live under."`
	JSON       bool     `name:"json" help:"Print as JSON."`
}

func (c *InspectCmd) Run(g *Globals) error {
	pair, err := recognisedPair(c.Args)
	if err != nil {
		return err
	}

	in, err := report.Inspect(g.Ctx, c.OutputRoot, pair)
	if err != nil {
		return err
	}

	if c.JSON {
		return report.WriteJSON(in, g.Out)
	}
	report.WriteInspection(in, g.Out)
	return nil
}

// recognisedPair accepts exactly one argument naming a recognised pair.
func recognisedPair(args []string) (string, error) {
	if len(args) != 1 {
		return "", apperr.NewValidation("expected a single argument 'language pair'")
	}
	if !langpair.IsRecognized(args[0]) {
		return "", apperr.NewValidation(fmt.Sprintf("argument '%s' is not a recognized language pair", args[0]))
	}
	return args[0], nil
}

type VerifyCmd struct {
	Pair       string `arg:"" help:"Language pair directory to verify."`
	OutputRoot string `name:"output-root" env:"OUTPUT_ROOT" default:"language_pairs" help:"Directory language pair folders live under."`
	JSON       bool   `name:"json" help:"Print as JSON."`
}

func (c *VerifyCmd) Run(g *Globals) error {
	if !langpair.IsDirName(c.Pair) {
		return apperr.NewValidation(fmt.Sprintf("language pair %q is not a valid directory name", c.Pair))
	}

	dir := filepath.Join(c.OutputRoot, c.Pair)
	m, err := manifest.Read(dir)
	if err != nil {
		return err
	}
	mismatches, err := manifest.Verify(m, dir)
	if err != nil {
		return err
	}

	v := &report.Verification{LangPair: m.LangPair, Files: len(m.Files), Mismatches: mismatches}
	if c.JSON {
		if err := report.WriteJSON(v, g.Out); err != nil {
			return err
		}
	} else {
		report.WriteVerification(v, g.Out)
	}

	if !v.OK() {
		return fmt.Errorf("%d of %d files do not match the manifest", len(mismatches), len(m.Files))
	}
	return nil
}

type SchemaCmd struct {
	Output  string `name:"output" short:"o" type:"path" help:"Directory to write scoreprep-v1.json and scoreprep-example.yaml into. Prints the schema when empty."`
	Example bool   `name:"example" help:"Print an example run file instead of the schema."`
}

const schemaBaseID = "https://schemas.mt-score-prep.dev"

func (c *SchemaCmd) Run(g *Globals) error {
	if c.Example && c.Output == "" {
		_, err := io.WriteString(g.Out, apis.ExampleScorePrep)
		return err
	}

	data, err := schema.NewGenerator(schemaBaseID).GenerateJSON(apis.ScorePrep{})
	if err != nil {
		return fmt.Errorf("failed to generate run file schema: %w", err)
	}
	if c.Output == "" {
		_, err = g.Out.Write(data)
		return err
	}

	if err := os.MkdirAll(c.Output, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	files := map[string][]byte{
		"scoreprep-v1.json":      data,
		"scoreprep-example.yaml": []byte(apis.ExampleScorePrep),
	}
	for _, name := range []string{"scoreprep-v1.json", "scoreprep-example.yaml"} {
		path := filepath.Join(c.Output, name)
		if err := os.WriteFile(path, files[name], 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		fmt.Fprintf(g.Out, "Generated %s\n", filepath.ToSlash(path))
	}
	return nil
}
