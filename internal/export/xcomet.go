package export

import "github.com/DjordjeVuckovic/mt-score-prep/internal/domain"

type xcometRecord struct {
	Src string  `json:"src"`
	MT  string  `json:"mt"`
	Ref *string `json:"ref,omitempty"`
}

// NewXComet writes {src, mt[, ref]} records for XCOMET-XL. The ref field is
// written for every record or for none, depending only on whether the first
// segment has a reference.
func NewXComet(opts ...Option) Exporter {
	return &recordExporter{
		base: base{name: XCometXL, opts: newOptions(opts)},
		mapper: func(segments []domain.Segment) func(domain.Segment) any {
			includeRef := segments[0].Ref != ""
			return func(s domain.Segment) any {
				rec := xcometRecord{Src: s.Src, MT: s.Hyp}
				if includeRef {
					ref := s.Ref
					rec.Ref = &ref
				}
				return rec
			}
		},
	}
}
