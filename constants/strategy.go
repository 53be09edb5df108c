package constants

// Strategy identifies one extraction pass. Order matters for arbitration:
// earlier strategies make stronger structural assumptions and win ties.
type Strategy string

const (
	StrategyDirect     Strategy = "DIRECT"     // name + separator + number + unit patterns
	StrategyTable      Strategy = "TABLE"      // pipe/tab/fixed-width rows
	StrategyPositional Strategy = "POSITIONAL" // wide-whitespace column splitting
	StrategySentence   Strategy = "SENTENCE"   // natural-language phrasings
	StrategyFallback   Strategy = "FALLBACK"   // high-recall patterns for common nutrients
)

// StrategyPriority ranks strategies for tie-breaking; lower is stronger.
var StrategyPriority = map[Strategy]int{
	StrategyDirect:     0,
	StrategyTable:      1,
	StrategyPositional: 2,
	StrategySentence:   3,
	StrategyFallback:   4,
}
