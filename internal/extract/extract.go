// Package extract pulls nutrient measurements out of free-form lab report
// text. Five strategies run over the same input, each tuned for a different
// report layout, and an arbitration step keeps the single most trustworthy
// value per nutrient.
package extract

import (
	"log/slog"
	"regexp"

	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/units"
)

type Extractor struct {
	reg      *registry.Registry
	units    *units.Reconciler
	resolver *resolver
	weights  Weights
	logger   *slog.Logger

	direct   []directPattern
	sentence []*regexp.Regexp
	fallback []fallbackPattern
}

type Option func(*Extractor)

// WithWeights overrides the per-strategy confidence table. Relative ordering
// between the direct tiers is assumed by arbitration; reordering them changes
// which layout wins when a report matches several shapes.
func WithWeights(w Weights) Option {
	return func(e *Extractor) { e.weights = w }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

func New(reg *registry.Registry, opts ...Option) *Extractor {
	e := &Extractor{
		reg:     reg,
		weights: DefaultWeights(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.units = units.NewReconciler(reg)
	e.resolver = newResolver(reg, e.units)
	e.direct = buildDirectPatterns(reg, e.weights)
	e.sentence = buildSentencePatterns()
	e.fallback = buildFallbackPatterns()
	return e
}

// Extract runs all five strategies over the text and arbitrates the results.
// Strategy order is fixed: when two strategies report the same confidence for
// a nutrient, the one that ran first keeps the value.
func (e *Extractor) Extract(text string) Result {
	text = NormalizeText(text)
	res := arbitrate(
		e.runDirect(text),
		e.runTable(text),
		e.runPositional(text),
		e.runSentence(text),
		e.runFallback(text),
	)
	e.filterPlausible(&res)
	e.logger.Debug("extraction complete", slog.Int("values", res.Len()))
	return res
}

// plausible is the inline form of the post-arbitration filter, used by
// strategies that want to reject a match early and keep scanning for a
// better occurrence instead of surrendering the nutrient.
func (e *Extractor) plausible(key string, val float64) bool {
	if val <= 0 {
		return false
	}
	bound := universalBound
	if spec, ok := e.reg.Lookup(key); ok {
		bound = spec.Plausible
	}
	return bound.Contains(val)
}
