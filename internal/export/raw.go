package export

import "github.com/DjordjeVuckovic/mt-score-prep/internal/domain"

// NewRaw dumps segments verbatim.
func NewRaw(opts ...Option) Exporter {
	return &recordExporter{
		base: base{name: Raw, opts: newOptions(opts)},
		mapper: func([]domain.Segment) func(domain.Segment) any {
			return func(s domain.Segment) any { return s }
		},
	}
}
