package extract

// Weights holds the confidence tier assigned to each pattern shape and
// strategy. The defaults are empirically chosen constants carried over from
// field use, not derived values; they are configurable precisely because
// nothing guarantees they are optimal. Only their ordering is load-bearing.
type Weights struct {
	// Direct pattern matcher tiers, strongest shape first.
	DirectColonUnit     float64 // "name: value unit" / "name = value unit"
	DirectSpaceUnit     float64 // "name value unit"
	DirectReversed      float64 // "value unit name"
	DirectTableCell     float64 // "name | value" / "name <tab> value" / wide-space cell
	DirectParenthetical float64 // "name (value unit)"
	DirectRange         float64 // "name: low-high", first bound taken
	DirectFootnote      float64 // "name: value*" with footnote marker
	DirectBare          float64 // "name: value" with no unit at all

	// Whole-strategy confidences.
	Table      float64
	Positional float64
	Sentence   float64
}

// DefaultWeights returns the standard tier values.
func DefaultWeights() Weights {
	return Weights{
		DirectColonUnit:     0.90,
		DirectSpaceUnit:     0.85,
		DirectReversed:      0.80,
		DirectTableCell:     0.75,
		DirectParenthetical: 0.70,
		DirectRange:         0.65,
		DirectFootnote:      0.60,
		DirectBare:          0.50,
		Table:               0.80,
		Positional:          0.60,
		Sentence:            0.70,
	}
}
