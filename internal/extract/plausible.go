package extract

import (
	"log/slog"

	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
)

// universalBound catches values for nutrients the catalogue has no sanity
// range for. Wide on purpose: it only needs to reject obvious OCR garbage
// like concatenated digits or a stray year.
var universalBound = registry.Range{Low: 0.01, High: 10000}

// filterPlausible drops extracted values that cannot be a real measurement.
// Sanity bounds are far wider than clinical normal ranges; an abnormal but
// physically possible result must survive this filter.
func (e *Extractor) filterPlausible(res *Result) {
	for key, val := range res.Values {
		if e.plausible(key, val) {
			continue
		}
		e.logger.Debug("discarding implausible value",
			slog.String("nutrient", key),
			slog.Float64("value", val),
			slog.String("strategy", string(res.Sources[key])))
		delete(res.Values, key)
		delete(res.Confidence, key)
		delete(res.Sources, key)
	}
}
