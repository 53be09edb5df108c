// Package interpret positions extracted measurements against clinical
// reference ranges. It consumes only final extraction output; it never sees
// raw text or intermediate candidates.
package interpret

import (
	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/extract"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
)

// Finding is one extracted value annotated with its clinical context.
type Finding struct {
	Key        string                `json:"nutrient"`
	Name       string                `json:"display_name"`
	Value      float64               `json:"value"`
	Unit       string                `json:"unit"`
	Confidence float64               `json:"confidence"`
	Strategy   constants.Strategy    `json:"strategy"`
	Status     constants.ValueStatus `json:"status"`
	Normal     registry.Range        `json:"normal_range"`
}

// Classify builds one Finding per extracted value, ordered by nutrient key.
// Keys the registry does not know are skipped; extraction only emits registry
// keys, so a miss here means the catalogue changed between calls.
func Classify(reg *registry.Registry, res extract.Result) []Finding {
	findings := make([]Finding, 0, res.Len())
	for _, key := range res.Keys() {
		spec, ok := reg.Lookup(key)
		if !ok {
			continue
		}
		val := res.Values[key]
		findings = append(findings, Finding{
			Key:        key,
			Name:       spec.Name(),
			Value:      val,
			Unit:       spec.Unit,
			Confidence: res.Confidence[key],
			Strategy:   res.Sources[key],
			Status:     status(val, spec.Normal),
			Normal:     spec.Normal,
		})
	}
	return findings
}

func status(val float64, normal registry.Range) constants.ValueStatus {
	switch {
	case val < normal.Low:
		return constants.ValueStatusLow
	case val > normal.High:
		return constants.ValueStatusHigh
	default:
		return constants.ValueStatusNormal
	}
}
