package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
)

var (
	reColSplit = regexp.MustCompile(`\s{2,}`)
	reAnyNum   = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// runPositional is strategy 3: documents that use wide whitespace as a column
// separator. Runs of two or more spaces become column boundaries; each part is
// tried as a test name and the following parts are searched for the value and
// unit. Confidence sits below the table strategy because column boundaries
// here are guessed, not declared.
func (e *Extractor) runPositional(text string) []Candidate {
	var out []Candidate
	seen := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || reSeparatorLine.MatchString(line) {
			continue
		}
		parts := reColSplit.Split(line, -1)
		if len(parts) < 2 {
			continue
		}
		for i := 0; i < len(parts)-1; i++ {
			name := parts[i]
			if !reLetter.MatchString(name) {
				continue
			}
			rawVal, unit, ok := findValueAfter(parts, i+1)
			if !ok {
				continue
			}
			if unit != "" && !e.units.Known(unit) {
				unit = ""
			}
			key, ok := e.resolver.resolve(name, unit)
			if !ok {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			val, err := parseValue(rawVal)
			if err != nil {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, Candidate{Key: key, Value: val, Confidence: e.weights.Positional, Strategy: constants.StrategyPositional})
		}
	}
	return out
}

// findValueAfter locates the first part from index start that contains a
// number, and searches that part plus the next two for a unit token.
func findValueAfter(parts []string, start int) (value, unit string, ok bool) {
	for i := start; i < len(parts); i++ {
		num := reAnyNum.FindString(parts[i])
		if num == "" {
			continue
		}
		for j := i; j < len(parts) && j < i+3; j++ {
			candidate := parts[j]
			if j == i {
				// Only the text after the number can hold this part's unit.
				candidate = parts[i][strings.Index(parts[i], num)+len(num):]
			}
			if tok := reUnitToken.FindString(candidate); tok != "" {
				unit = tok
				break
			}
		}
		return num, unit, true
	}
	return "", "", false
}
