// Package extract turns raw, often OCR-degraded lab report text into a
// validated mapping of canonical nutrient keys to numeric measurements.
//
// Five independent strategies scan the same text, each producing candidates
// with a confidence score; an arbitration fold keeps the best candidate per
// nutrient and a plausibility filter drops values no human could have.
package extract

import (
	"sort"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
)

// Candidate is one strategy's claim about a nutrient value. Transient: it only
// exists between a strategy pass and arbitration.
type Candidate struct {
	Key        string
	Value      float64
	Confidence float64
	Strategy   constants.Strategy
}

// Result is the final per-document extraction outcome. Immutable once
// returned; unrelated to any prior call.
type Result struct {
	Values     map[string]float64           // nutrient key -> measured value
	Confidence map[string]float64           // nutrient key -> arbitrated confidence in [0,1]
	Sources    map[string]constants.Strategy // nutrient key -> winning strategy
}

func newResult() Result {
	return Result{
		Values:     make(map[string]float64),
		Confidence: make(map[string]float64),
		Sources:    make(map[string]constants.Strategy),
	}
}

// Len returns the number of nutrients extracted.
func (r Result) Len() int { return len(r.Values) }

// Keys returns the extracted nutrient keys in sorted order.
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r.Values))
	for k := range r.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
