package extract

import (
	"regexp"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
)

// fallbackPattern is one high-recall, low-precision net for a nutrient that
// keeps showing up mangled in real reports. Each carries its own fixed
// confidence so arbitration always prefers a stricter strategy's answer.
type fallbackPattern struct {
	key  string
	conf float64
	re   *regexp.Regexp
}

func buildFallbackPatterns() []fallbackPattern {
	return []fallbackPattern{
		{"vitamin_d", 0.65, regexp.MustCompile(`(?i)(?:vitamin[ \t]*d3?\b|vit\.?[ \t]*d\b|25[-\s(]*oh)[^0-9\n]{0,25}(\d{1,3}(?:[.,]\d+)?)\b`)},
		{"vitamin_b12", 0.65, regexp.MustCompile(`(?i)\bb[- ]?12\b[^0-9\n]{0,25}(\d{2,4}(?:[.,]\d+)?)\b`)},
		{"ferritin", 0.60, regexp.MustCompile(`(?i)\bferritin\b[^0-9\n]{0,25}(\d{1,4}(?:[.,]\d+)?)\b`)},
		{"iron", 0.55, regexp.MustCompile(`(?i)\biron\b[^0-9\n]{0,25}(\d{1,3}(?:[.,]\d+)?)\b`)},
		{"hemoglobin", 0.55, regexp.MustCompile(`(?i)\b(?:hemoglobin|haemoglobin|hgb)\b[^0-9\n]{0,20}(\d{1,2}(?:[.,]\d+)?)\b`)},
		{"glucose", 0.60, regexp.MustCompile(`(?i)\bglucose\b[^0-9\n]{0,25}(\d{2,3}(?:[.,]\d+)?)\b`)},
		{"total_cholesterol", 0.50, regexp.MustCompile(`(?i)\bcholesterol\b[^0-9\n]{0,25}(\d{2,3}(?:[.,]\d+)?)\b`)},
	}
}

// runFallback is strategy 5: a last net under the most commonly misformatted
// nutrients. No unit handling at all; plausibility filtering downstream is the
// only guard, which is why the confidences sit at the bottom of the scale.
func (e *Extractor) runFallback(text string) []Candidate {
	var out []Candidate
	seen := make(map[string]struct{})
	for _, p := range e.fallback {
		if _, dup := seen[p.key]; dup {
			continue
		}
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		val, err := parseValue(m[1])
		if err != nil {
			continue
		}
		seen[p.key] = struct{}{}
		out = append(out, Candidate{Key: p.key, Value: val, Confidence: p.conf, Strategy: constants.StrategyFallback})
	}
	return out
}
