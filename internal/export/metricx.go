package export

import "github.com/DjordjeVuckovic/mt-score-prep/internal/domain"

type metricxRecord struct {
	Source     string `json:"source"`
	Hypothesis string `json:"hypothesis"`
	Reference  string `json:"reference"`
}

// NewMetricX writes {source, hypothesis, reference} records for MetricX-24.
// reference is always present, empty when the segment has none.
func NewMetricX(opts ...Option) Exporter {
	return &recordExporter{
		base: base{name: MetricX24, opts: newOptions(opts)},
		mapper: func([]domain.Segment) func(domain.Segment) any {
			return func(s domain.Segment) any {
				return metricxRecord{Source: s.Src, Hypothesis: s.Hyp, Reference: s.Ref}
			}
		},
	}
}
