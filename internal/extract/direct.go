package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
)

// Shared submatch vocabulary. Gaps use [ \t] rather than \s so a pattern never
// silently spans lines.
const (
	numPat  = `(\d+(?:[.,]\d+)?)`
	unitPat = `([a-zA-Zµ%][a-zA-Z0-9µ%/.^\\]*)`
)

// directPattern is one precompiled "name + separator + number + unit" shape
// for one nutrient. needUnit marks the high tiers where a matched, compatible
// unit token is part of the shape itself.
type directPattern struct {
	key      string
	conf     float64
	re       *regexp.Regexp
	valueIdx int
	unitIdx  int // 0 when the shape captures no unit
	needUnit bool
}

// nameVariants returns every surface form tried for a nutrient: the canonical
// name, its squeezed/underscored/hyphenated forms, and all registered aliases.
func nameVariants(spec *registry.NutrientSpec) []string {
	canonical := strings.ToLower(spec.Name())
	seen := make(map[string]struct{}, len(spec.Aliases)+4)
	var out []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	add(canonical)
	add(strings.ReplaceAll(canonical, " ", ""))
	add(strings.ReplaceAll(canonical, " ", "_"))
	add(strings.ReplaceAll(canonical, " ", "-"))
	for _, a := range spec.Aliases {
		add(a)
	}
	return out
}

// buildDirectPatterns compiles the full pattern table once at extractor
// construction. Within one nutrient the shapes are ordered by descending
// confidence so the runner can short-circuit.
func buildDirectPatterns(reg *registry.Registry, w Weights) []directPattern {
	var out []directPattern
	for _, spec := range reg.All() {
		for _, variant := range nameVariants(spec) {
			qv := regexp.QuoteMeta(variant)
			shapes := []struct {
				conf     float64
				expr     string
				valueIdx int
				unitIdx  int
				needUnit bool
			}{
				{w.DirectColonUnit, `(?i)\b` + qv + `[ \t]*[:=][ \t]*` + numPat + `[ \t]*` + unitPat, 1, 2, true},
				{w.DirectSpaceUnit, `(?i)\b` + qv + `[ \t]+` + numPat + `[ \t]*` + unitPat, 1, 2, true},
				{w.DirectReversed, `(?i)` + numPat + `[ \t]*` + unitPat + `[ \t]+` + qv, 1, 2, true},
				{w.DirectTableCell, `(?i)\b` + qv + `[ \t]*(?:\|[ \t]*|\t[ \t]*|[ \t]{3,})` + numPat + `(?:[ \t]*` + unitPat + `)?`, 1, 2, false},
				{w.DirectParenthetical, `(?i)\b` + qv + `[ \t]*\([ \t]*` + numPat + `(?:[ \t]*` + unitPat + `)?[ \t]*\)`, 1, 2, false},
				{w.DirectRange, `(?i)\b` + qv + `[ \t]*[:=]?[ \t]*` + numPat + `[ \t]*[-–][ \t]*\d+(?:[.,]\d+)?`, 1, 0, false},
				{w.DirectFootnote, `(?i)\b` + qv + `[ \t]*[:=]?[ \t]*` + numPat + `[ \t]*[*†‡#]`, 1, 0, false},
				{w.DirectBare, `(?i)\b` + qv + `[ \t]*[:=][ \t]*` + numPat + `\b`, 1, 0, false},
			}
			for _, sh := range shapes {
				re, err := regexp.Compile(sh.expr)
				if err != nil {
					// A broken pattern for one variant must never abort the
					// rest of the table.
					continue
				}
				out = append(out, directPattern{
					key:      spec.Key,
					conf:     sh.conf,
					re:       re,
					valueIdx: sh.valueIdx,
					unitIdx:  sh.unitIdx,
					needUnit: sh.needUnit,
				})
			}
		}
	}
	return out
}

// runDirect is strategy 1: scan the whole text with the compiled shape table.
// For each nutrient the highest-confidence shape whose parsed value also
// passes the plausibility pre-filter wins.
func (e *Extractor) runDirect(text string) []Candidate {
	best := make(map[string]Candidate)
	for _, p := range e.direct {
		if cur, ok := best[p.key]; ok && cur.Confidence >= p.conf {
			continue
		}
		matches := p.re.FindAllStringSubmatch(text, 8)
		for _, m := range matches {
			val, err := parseValue(m[p.valueIdx])
			if err != nil {
				continue
			}
			unit := ""
			if p.unitIdx > 0 && p.unitIdx < len(m) {
				unit = m[p.unitIdx]
			}
			if p.needUnit && unit == "" {
				continue
			}
			if !e.units.Match(unit, p.key) {
				continue
			}
			if !e.plausible(p.key, val) {
				continue
			}
			best[p.key] = Candidate{Key: p.key, Value: val, Confidence: p.conf, Strategy: constants.StrategyDirect}
			break
		}
	}
	out := make([]Candidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	return out
}
