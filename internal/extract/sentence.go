package extract

import (
	"regexp"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
)

// Sentence boundaries: terminal punctuation followed by whitespace, or a line
// break. A bare period inside "25.8" never splits.
var reSentenceSplit = regexp.MustCompile(`[.!?](?:\s+|$)|\n`)

// buildSentencePatterns compiles the natural-language phrasings. The name
// group is lazy so it stops at the phrasing keyword.
func buildSentencePatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		// "<name> level is/was <number> <unit>"
		regexp.MustCompile(`(?i)^(.{1,60}?)[ \t]+(?:level|value|result|reading)s?[ \t]+(?:is|was|measures|measured(?:[ \t]+at)?|came[ \t]+back[ \t]+at)[ \t]*:?[ \t]*` + numPat + `(?:[ \t]*` + unitPat + `)?`),
		// "level of <name> is/was <number> <unit>"
		regexp.MustCompile(`(?i)(?:level|value|result)s?[ \t]+of[ \t]+(.{1,60}?)[ \t]+(?:is|was)[ \t]+` + numPat + `(?:[ \t]*` + unitPat + `)?`),
		// "<name>: <number> <unit>"
		regexp.MustCompile(`(?i)^[-•*\s]*(.{1,60}?)[ \t]*:[ \t]*` + numPat + `(?:[ \t]*` + unitPat + `)?`),
	}
}

// runSentence is strategy 4: sentence-level phrasings. Within this pass the
// first sentence to name a nutrient wins, so a noisy later mention cannot
// displace a good early one; cross-strategy arbitration still happens later.
func (e *Extractor) runSentence(text string) []Candidate {
	var out []Candidate
	seen := make(map[string]struct{})
	for _, sentence := range reSentenceSplit.Split(text, -1) {
		if sentence == "" {
			continue
		}
		for _, re := range e.sentence {
			m := re.FindStringSubmatch(sentence)
			if m == nil {
				continue
			}
			unit := ""
			if len(m) > 3 {
				unit = m[3]
			}
			if unit != "" && !e.units.Known(unit) {
				unit = ""
			}
			key, ok := e.resolver.resolve(m[1], unit)
			if !ok {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			val, err := parseValue(m[2])
			if err != nil {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, Candidate{Key: key, Value: val, Confidence: e.weights.Sentence, Strategy: constants.StrategySentence})
		}
	}
	return out
}
