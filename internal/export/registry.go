package export

import (
	"fmt"
	"strings"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
)

const (
	Raw       = "raw"
	XCometXL  = "xcomet-xl"
	MetricX24 = "metricx-24"
	Gemba     = "gemba"
)

// Names lists every exporter in the order they run by default.
var Names = []string{Raw, XCometXL, MetricX24, Gemba}

var constructors = map[string]func(...Option) Exporter{
	Raw:       NewRaw,
	XCometXL:  NewXComet,
	MetricX24: NewMetricX,
	Gemba:     NewGemba,
}

// New builds the exporter registered under name.
func New(name string, opts ...Option) (Exporter, error) {
	ctor, ok := constructors[strings.TrimSpace(name)]
	if !ok {
		return nil, apperr.NewValidation(
			fmt.Sprintf("unknown exporter %q, expected one of %v", name, Names))
	}
	return ctor(opts...), nil
}

// NewSet builds exporters for names, keeping their order. Duplicates are rejected.
func NewSet(names []string, opts ...Option) ([]Exporter, error) {
	seen := make(map[string]bool, len(names))
	exporters := make([]Exporter, 0, len(names))
	for _, name := range names {
		e, err := New(name, opts...)
		if err != nil {
			return nil, err
		}
		if seen[e.Name()] {
			return nil, apperr.NewValidation(fmt.Sprintf("exporter %q listed twice", e.Name()))
		}
		seen[e.Name()] = true
		exporters = append(exporters, e)
	}
	return exporters, nil
}
