package report

import (
	"github.com/DjordjeVuckovic/mt-score-prep/internal/domain"
	"github.com/DjordjeVuckovic/mt-score-prep/internal/manifest"
)

// Summary describes a finished prepare run.
type Summary struct {
	RunID    string            `json:"run_id"`
	LangPair string            `json:"lang_pair"`
	Stats    domain.BuildStats `json:"stats"`
	Files    []string          `json:"files"`
	Manifest string            `json:"manifest,omitempty"`
	Stored   bool              `json:"stored"`
}

// Inspection summarises an exported xcomet-xl segments file.
type Inspection struct {
	LangPair    string  `json:"lang_pair"`
	Path        string  `json:"path"`
	Segments    int     `json:"segments"`
	RefsPresent bool    `json:"refs_present"`
	AvgSrcLen   float64 `json:"avg_src_len"`
	AvgMTLen    float64 `json:"avg_mt_len"`
}

// Verification is the outcome of checking a manifest against disk.
type Verification struct {
	LangPair   string              `json:"lang_pair"`
	Files      int                 `json:"files"`
	Mismatches []manifest.Mismatch `json:"mismatches"`
}

func (v *Verification) OK() bool {
	return len(v.Mismatches) == 0
}
