package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/units"
)

// resolver maps free-text test names from table rows, columns and sentences to
// canonical nutrient keys. Shared by the table, positional and sentence
// strategies.
type resolver struct {
	reg   *registry.Registry
	units *units.Reconciler
}

func newResolver(reg *registry.Registry, rec *units.Reconciler) *resolver {
	return &resolver{reg: reg, units: rec}
}

var reLetter = regexp.MustCompile(`[a-zA-Z]`)

// ocrCanonChars folds glyphs OCR habitually confuses onto one form, so that
// "lron" compares equal to "iron" and "Cobalarnin" to "cobalamin". Applied to
// both sides of a comparison, never to stored data.
var ocrCanonChars = strings.NewReplacer(
	"0", "o",
	"1", "i",
	"l", "i",
	"5", "s",
)

func ocrCanon(s string) string {
	s = ocrCanonChars.Replace(strings.ToLower(s))
	return strings.ReplaceAll(s, "rn", "m")
}

// resolve matches a candidate test name to a nutrient key. A match requires
// (a) the canonical name or an alias appearing as a substring of the candidate
// (an OCR-canonicalized comparison is also tried), or (b) at least half of the
// canonical name's words appearing as substrings of candidate words. Unit
// compatibility must hold either way; a missing unit token never blocks.
// When several names match, the longest matched name wins.
func (r *resolver) resolve(name, unit string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.Trim(n, "-•*:|,. \t")
	if len(n) < 2 || !reLetter.MatchString(n) {
		return "", false
	}
	nCanon := ocrCanon(n)

	bestKey, bestLen := "", 0
	for _, spec := range r.reg.All() {
		for _, cand := range specNames(spec) {
			if len(cand) > bestLen &&
				(strings.Contains(n, cand) || strings.Contains(nCanon, ocrCanon(cand))) &&
				r.units.Match(unit, spec.Key) {
				bestKey, bestLen = spec.Key, len(cand)
			}
		}
	}
	if bestKey != "" {
		return bestKey, true
	}

	// Word-overlap fallback for partially mangled names. Only words of three
	// or more characters count; single letters match everything.
	candWords := strings.FieldsFunc(n, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	for _, spec := range r.reg.All() {
		words := significantWords(spec.Name())
		if len(words) == 0 {
			continue
		}
		hits := 0
		for _, w := range words {
			for _, cw := range candWords {
				if strings.Contains(cw, w) {
					hits++
					break
				}
			}
		}
		if hits*2 >= len(words) && r.units.Match(unit, spec.Key) {
			return spec.Key, true
		}
	}
	return "", false
}

func specNames(spec *registry.NutrientSpec) []string {
	names := make([]string, 0, len(spec.Aliases)+1)
	names = append(names, strings.ToLower(spec.Name()))
	names = append(names, spec.Aliases...)
	return names
}

func significantWords(name string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if len(w) >= 3 {
			out = append(out, w)
		}
	}
	return out
}

// parseValue parses a numeric token, accepting a comma decimal separator.
// Failures are expected and non-fatal: the caller skips the candidate.
func parseValue(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
