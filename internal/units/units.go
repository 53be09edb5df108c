// Package units reconciles unit tokens pulled out of messy report text against
// the canonical unit each nutrient is measured in. Matching is deliberately
// forgiving: reports omit units, mangle slashes, and OCR swaps glyphs.
package units

import (
	"strings"

	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
)

// variantGroups lists unit spellings that mean the same thing. The first entry
// of each group is the canonical form used by the registry.
var variantGroups = [][]string{
	{"ng/mL", "ngml", "ng per ml", "ng\\ml", "ng /ml", "ng/ ml"},
	{"pg/mL", "pgml", "pg per ml", "pg\\ml"},
	{"mcg/dL", "mcgdl", "mcg per dl", "ug/dl", "µg/dl", "ug per dl"},
	{"mcg/L", "mcgl", "mcg per l", "ug/l", "µg/l"},
	{"mg/dL", "mgdl", "mg per dl", "mg\\dl"},
	{"mg/L", "mgl", "mg per l"},
	{"g/dL", "gdl", "g per dl", "gm/dl"},
	{"mEq/L", "meql", "meq per l", "meq\\l"},
	{"mIU/L", "miul", "miu per l", "uiu/l"},
	{"uIU/mL", "uiuml", "uiu per ml", "miu/ml"},
	{"U/L", "ul", "iu/l", "u per l", "units/l"},
	{"mL/min", "mlmin", "ml per min", "ml/min/1.73m2", "ml/min/1.73"},
	{"mm/hr", "mmhr", "mm per hr", "mm/h"},
	{"ng/dL", "ngdl", "ng per dl"},
	{"thousand/uL", "x10^3/ul", "10^3/ul", "k/ul", "10e3/ul", "thou/ul"},
	{"million/uL", "x10^6/ul", "10^6/ul", "m/ul", "10e6/ul"},
	{"%", "percent", "pct"},
	{"fL", "fl"},
	{"pg", "pg"},
}

// ocrGlyphs maps glyphs OCR commonly misreads onto one canonical form, so
// "ng/m1" and "ng/ml" compare equal. Applied only in the fuzzy pass.
var ocrGlyphs = strings.NewReplacer(
	"0", "o",
	"1", "l",
	"5", "s",
)

// Reconciler answers whether an extracted unit token is compatible with the
// canonical unit of a nutrient. Read-only after construction.
type Reconciler struct {
	reg     *registry.Registry
	groups map[string]int // normalized token -> group id
	fuzzy  map[string]int // OCR-canonicalized token -> group id
}

// NewReconciler builds the variant lookup tables for the given registry.
func NewReconciler(reg *registry.Registry) *Reconciler {
	r := &Reconciler{
		reg:    reg,
		groups: make(map[string]int),
		fuzzy:  make(map[string]int),
	}
	for id, group := range variantGroups {
		for _, v := range group {
			n := normalize(v)
			if _, taken := r.groups[n]; !taken {
				r.groups[n] = id
			}
			f := ocrGlyphs.Replace(n)
			if _, taken := r.fuzzy[f]; !taken {
				r.fuzzy[f] = id
			}
		}
	}
	return r
}

// Match reports whether an extracted unit token is acceptable for nutrientKey.
// An empty token is non-blocking: many layouts omit the unit entirely, and its
// absence must not reject an otherwise good numeric candidate.
func (r *Reconciler) Match(extracted, nutrientKey string) bool {
	extracted = strings.TrimSpace(extracted)
	if extracted == "" {
		return true
	}
	spec, ok := r.reg.Lookup(nutrientKey)
	if !ok {
		return true
	}

	want := normalize(spec.Unit)
	got := normalize(extracted)
	if got == want {
		return true
	}

	if wg, ok := r.groups[want]; ok {
		if gg, ok := r.groups[got]; ok && gg == wg {
			return true
		}
		// OCR-tolerant pass: canonicalize common glyph misreads and retry
		// variant membership.
		if gg, ok := r.fuzzy[ocrGlyphs.Replace(got)]; ok && gg == wg {
			return true
		}
	}
	return false
}

// Known reports whether a token looks like any unit this reconciler has heard
// of, in any variant group. Callers use it to tell a mangled-but-real unit
// apart from a stray word that happened to sit where a unit belongs.
func (r *Reconciler) Known(tok string) bool {
	n := normalize(tok)
	if n == "" {
		return false
	}
	if _, ok := r.groups[n]; ok {
		return true
	}
	_, ok := r.fuzzy[ocrGlyphs.Replace(n)]
	return ok
}

// normalize lowercases and strips whitespace and trailing punctuation so that
// "ng / mL," and "ng/ml" compare equal.
func normalize(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	u = strings.ReplaceAll(u, " ", "")
	u = strings.Trim(u, ".,;:()[]")
	return u
}
