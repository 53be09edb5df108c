package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
)

var (
	// Separator rows: runs of box-drawing noise between header and data.
	reSeparatorLine = regexp.MustCompile(`^[\s|+_=\-─═━]+$`)
	reLeadingNum    = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)[*†‡#]?\s*(.*)$`)
	reUnitToken     = regexp.MustCompile(`[a-zA-Zµ%][a-zA-Z0-9µ%/.^\\]*`)

	// Fixed-width rows: a name field, three or more spaces, a number, then
	// optionally a footnote marker and a unit token.
	reFixedRow = regexp.MustCompile(`^ {0,4}(\S(?:.{0,38}?\S)?) {3,}(\d+(?:[.,]\d+)?)[*†‡#]? {0,6}([^\s(\[]{1,15})?`)
)

// runTable is strategy 2: structural row parsing. Tries pipe-delimited cells,
// tab-delimited cells, then fixed-width space-aligned columns, and resolves
// the name field through the shared fuzzy resolver gated by unit
// compatibility. Any structural match carries the same fixed confidence.
func (e *Extractor) runTable(text string) []Candidate {
	var out []Candidate
	seen := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" || reSeparatorLine.MatchString(line) {
			continue
		}
		name, rawVal, unit, ok := parseTableRow(line)
		if !ok {
			continue
		}
		// A stray word in the unit position must not veto the row; only a
		// recognizable-but-conflicting unit should.
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
		out = append(out, Candidate{Key: key, Value: val, Confidence: e.weights.Table, Strategy: constants.StrategyTable})
	}
	return out
}

// parseTableRow extracts (name, value, unit) from one line using the three
// row shapes in order of structural strength.
func parseTableRow(line string) (name, value, unit string, ok bool) {
	if strings.Contains(line, "|") {
		if n, v, u, ok := parseDelimitedRow(line, "|"); ok {
			return n, v, u, true
		}
	}
	if strings.Contains(line, "\t") {
		if n, v, u, ok := parseDelimitedRow(line, "\t"); ok {
			return n, v, u, true
		}
	}
	if m := reFixedRow.FindStringSubmatch(line); m != nil && reLetter.MatchString(m[1]) {
		return m[1], m[2], m[3], true
	}
	return "", "", "", false
}

// parseDelimitedRow handles "name <sep> value <sep> unit <sep> ..." rows. The
// first cell is the name; the first cell that starts with a number carries the
// value; the unit rides in that cell's tail or in the following cell.
func parseDelimitedRow(line, sep string) (name, value, unit string, ok bool) {
	var cells []string
	for _, c := range strings.Split(line, sep) {
		c = strings.TrimSpace(c)
		if c != "" {
			cells = append(cells, c)
		}
	}
	if len(cells) < 2 || !reLetter.MatchString(cells[0]) {
		return "", "", "", false
	}
	for i := 1; i < len(cells); i++ {
		m := reLeadingNum.FindStringSubmatch(cells[i])
		if m == nil {
			continue
		}
		value = m[1]
		if tail := strings.TrimSpace(m[2]); tail != "" {
			unit = firstUnitToken(tail)
		}
		if unit == "" && i+1 < len(cells) {
			unit = firstUnitToken(cells[i+1])
		}
		return cells[0], value, unit, true
	}
	return "", "", "", false
}

// firstUnitToken pulls a unit-shaped token from a cell, or "" when the cell is
// something else entirely (a reference range, a flag word, etc).
func firstUnitToken(cell string) string {
	tok := reUnitToken.FindString(cell)
	// Reference-range cells like "30-100" or "(15-150)" produce no token;
	// words longer than a unit would ("Normal", "Reference") are rejected.
	if len(tok) > 12 {
		return ""
	}
	return tok
}
