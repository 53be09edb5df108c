package units

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
)

func newReconciler(t *testing.T) *Reconciler {
	t.Helper()
	reg, err := registry.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return NewReconciler(reg)
}

func TestMatch_ExactAndCase(t *testing.T) {
	r := newReconciler(t)

	assert.True(t, r.Match("ng/mL", "vitamin_d"))
	assert.True(t, r.Match("NG/ML", "vitamin_d"))
	assert.True(t, r.Match(" ng / ml ", "vitamin_d"))
	assert.True(t, r.Match("ng/ml,", "vitamin_d"))
}

func TestMatch_VariantGroups(t *testing.T) {
	r := newReconciler(t)

	tests := []struct {
		name     string
		unit     string
		nutrient string
		want     bool
	}{
		{"collapsed slash", "ngml", "vitamin_d", true},
		{"spelled out", "ng per ml", "vitamin_d", true},
		{"backslash", "ng\\ml", "vitamin_d", true},
		{"microgram spelling", "ug/dl", "iron", true},
		{"micro sign", "µg/dl", "iron", true},
		{"iu for u", "IU/L", "alt", true},
		{"wrong dimension", "mg/dl", "vitamin_d", false},
		{"unrelated token", "bananas", "vitamin_d", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Match(tt.unit, tt.nutrient))
		})
	}
}

func TestMatch_OCRGlyphs(t *testing.T) {
	r := newReconciler(t)

	// 1 read for l, 0 for o, 5 for s
	assert.True(t, r.Match("ng/m1", "vitamin_d"))
	assert.True(t, r.Match("pg/m1", "vitamin_b12"))
	assert.False(t, r.Match("ng/m1", "glucose"))
}

func TestMatch_MissingUnitIsNonBlocking(t *testing.T) {
	r := newReconciler(t)

	assert.True(t, r.Match("", "vitamin_d"))
	assert.True(t, r.Match("   ", "vitamin_d"))
}

func TestMatch_UnknownNutrientKey(t *testing.T) {
	r := newReconciler(t)

	// Unknown keys never block; the registry treats them as no-ops.
	assert.True(t, r.Match("ng/ml", "unobtainium"))
}

func TestKnown(t *testing.T) {
	r := newReconciler(t)

	assert.True(t, r.Known("ng/mL"))
	assert.True(t, r.Known("percent"))
	assert.True(t, r.Known("ng/m1"))
	assert.False(t, r.Known("Normal"))
	assert.False(t, r.Known(""))
}
