package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Range is an inclusive numeric interval.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether v lies within the range, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// NutrientSpec describes one canonical lab parameter. Immutable after registry construction.
type NutrientSpec struct {
	Key       string   `json:"key"`
	Unit      string   `json:"unit"`
	Normal    Range    `json:"normal"`    // clinical reference range
	Plausible Range    `json:"plausible"` // wide sanity bound, always ⊇ Normal
	Aliases   []string `json:"aliases"`   // alternate surface names, case-insensitive
}

// Name returns the canonical display name (key with underscores as spaces).
func (s *NutrientSpec) Name() string {
	return strings.ReplaceAll(s.Key, "_", " ")
}

// Registry is the process-wide nutrient catalogue. Read-only after New returns.
type Registry struct {
	specs   map[string]*NutrientSpec
	ordered []*NutrientSpec
}

// New builds a registry from the built-in table, validating every entry.
func New(logger *slog.Logger) (*Registry, error) {
	return build(builtinSpecs(), logger)
}

// NewFromSpecs builds a registry from an explicit spec list. Used when a JSON
// override file replaces or extends the built-in table.
func NewFromSpecs(specs []NutrientSpec, logger *slog.Logger) (*Registry, error) {
	return build(specs, logger)
}

func build(specs []NutrientSpec, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{specs: make(map[string]*NutrientSpec, len(specs))}

	seenAliases := make(map[string]string) // alias -> owning key, first registered wins
	for i := range specs {
		s := specs[i]
		if s.Key == "" {
			return nil, fmt.Errorf("nutrient spec %d: empty key", i)
		}
		if _, dup := r.specs[s.Key]; dup {
			return nil, fmt.Errorf("duplicate nutrient key %q", s.Key)
		}
		if s.Unit == "" {
			return nil, fmt.Errorf("nutrient %q: empty unit", s.Key)
		}
		if s.Plausible.Low <= 0 {
			return nil, fmt.Errorf("nutrient %q: plausible range low must be positive, got %g", s.Key, s.Plausible.Low)
		}
		if s.Plausible.Low > s.Normal.Low || s.Plausible.High < s.Normal.High {
			return nil, fmt.Errorf("nutrient %q: plausible range [%g,%g] does not contain normal range [%g,%g]",
				s.Key, s.Plausible.Low, s.Plausible.High, s.Normal.Low, s.Normal.High)
		}
		kept := make([]string, 0, len(s.Aliases))
		for _, a := range s.Aliases {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "" {
				return nil, fmt.Errorf("nutrient %q: empty alias", s.Key)
			}
			if owner, taken := seenAliases[a]; taken {
				// Configuration mistake, not fatal: the first registration keeps the alias.
				logger.Warn("duplicate alias across nutrients", "alias", a, "kept", owner, "dropped_from", s.Key)
				continue
			}
			seenAliases[a] = s.Key
			kept = append(kept, a)
		}
		s.Aliases = kept

		sp := &s
		r.specs[s.Key] = sp
		r.ordered = append(r.ordered, sp)
	}

	sort.Slice(r.ordered, func(i, j int) bool { return r.ordered[i].Key < r.ordered[j].Key })
	logger.Debug("nutrient registry built", "entries", len(r.ordered))
	return r, nil
}

// Lookup returns the spec for a canonical key. Unknown keys are a valid no-match.
func (r *Registry) Lookup(key string) (*NutrientSpec, bool) {
	s, ok := r.specs[key]
	return s, ok
}

// All returns every spec ordered by key.
func (r *Registry) All() []*NutrientSpec {
	return r.ordered
}

// Len returns the number of registered nutrients.
func (r *Registry) Len() int {
	return len(r.ordered)
}
