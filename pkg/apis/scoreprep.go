package apis

import "fmt"

const (
	ScorePrepKind    = "ScorePrep"
	ScorePrepVersion = "v1"
)

// ScorePrep describes one preparation run. Empty fields fall back to the
// environment and then to built-in defaults.
type ScorePrep struct {
	Kind       string   `json:"kind" example:"ScorePrep" yaml:"kind" schema:"required,enum=ScorePrep"`
	Version    string   `json:"version" example:"v1" yaml:"version" schema:"required,enum=v1"`
	Metadata   Metadata `json:"metadata" yaml:"metadata" schema:"required"`
	Corpus     string   `json:"corpus" example:"wmt25-genmt.jsonl" yaml:"corpus" description:"Corpus JSONL path."`
	Hypotheses string   `json:"hypotheses" example:"OPUS-en-ja.jsonl" yaml:"hypotheses" description:"Hypotheses JSONL path."`
	OutputRoot string   `json:"outputRoot" example:"language_pairs" yaml:"outputRoot" description:"Directory language pair folders are written under."`
	Exporters  []string `json:"exporters" yaml:"exporters" schema:"minItems=1" description:"Exporters to run, in order."`
	Storage    string   `json:"storage" example:"sqlite" yaml:"storage" schema:"enum=in_mem|sqlite|pg|es" description:"Segment storage backend."`
}

type Metadata struct {
	Name        string `json:"name" example:"OPUS en-ja" yaml:"name" schema:"required,minLength=1"`
	Description string `json:"description" yaml:"description"`
}

func (sp *ScorePrep) Validate() error {
	if sp.Kind != ScorePrepKind {
		return fmt.Errorf("kind must be %s, got %q", ScorePrepKind, sp.Kind)
	}
	if sp.Version != ScorePrepVersion {
		return fmt.Errorf("unsupported version %q", sp.Version)
	}
	if sp.Metadata.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}
	for i, name := range sp.Exporters {
		if name == "" {
			return fmt.Errorf("exporters[%d] must not be empty", i)
		}
	}
	return nil
}

// ExampleScorePrep is a complete run file using every exporter.
const ExampleScorePrep = `kind: ScorePrep
version: v1
metadata:
  name: "OPUS en-ja"
  description: "OPUS-MT English to Japanese outputs for WMT25"
corpus: wmt25-genmt.jsonl
hypotheses: OPUS-en-ja.jsonl
outputRoot: language_pairs
exporters:
  - raw
  - xcomet-xl
  - metricx-24
  - gemba
storage: sqlite
`
