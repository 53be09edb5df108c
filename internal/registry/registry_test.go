package registry

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_BuiltinCatalogue(t *testing.T) {
	reg, err := New(testLogger())
	require.NoError(t, err)
	require.GreaterOrEqual(t, reg.Len(), 45)

	spec, ok := reg.Lookup("vitamin_d")
	require.True(t, ok)
	assert.Equal(t, "ng/mL", spec.Unit)
	assert.Equal(t, "vitamin d", spec.Name())
	assert.Contains(t, spec.Aliases, "25(oh)d")
}

func TestNew_CatalogueInvariants(t *testing.T) {
	reg, err := New(testLogger())
	require.NoError(t, err)

	for _, spec := range reg.All() {
		assert.NotEmpty(t, spec.Key)
		assert.NotEmpty(t, spec.Unit, "nutrient %s", spec.Key)
		assert.Greater(t, spec.Plausible.Low, 0.0, "nutrient %s", spec.Key)
		assert.LessOrEqual(t, spec.Plausible.Low, spec.Normal.Low, "nutrient %s", spec.Key)
		assert.GreaterOrEqual(t, spec.Plausible.High, spec.Normal.High, "nutrient %s", spec.Key)
	}
}

func TestLookup_UnknownKey(t *testing.T) {
	reg, err := New(testLogger())
	require.NoError(t, err)

	_, ok := reg.Lookup("unobtainium")
	assert.False(t, ok)
}

func TestNewFromSpecs_Validation(t *testing.T) {
	base := NutrientSpec{
		Key:       "zinc",
		Unit:      "mcg/dL",
		Normal:    Range{Low: 60, High: 120},
		Plausible: Range{Low: 10, High: 500},
	}

	t.Run("duplicate key", func(t *testing.T) {
		_, err := NewFromSpecs([]NutrientSpec{base, base}, testLogger())
		assert.Error(t, err)
	})

	t.Run("missing unit", func(t *testing.T) {
		s := base
		s.Unit = ""
		_, err := NewFromSpecs([]NutrientSpec{s}, testLogger())
		assert.Error(t, err)
	})

	t.Run("non-positive plausible low", func(t *testing.T) {
		s := base
		s.Plausible.Low = 0
		_, err := NewFromSpecs([]NutrientSpec{s}, testLogger())
		assert.Error(t, err)
	})

	t.Run("plausible narrower than normal", func(t *testing.T) {
		s := base
		s.Plausible = Range{Low: 70, High: 100}
		_, err := NewFromSpecs([]NutrientSpec{s}, testLogger())
		assert.Error(t, err)
	})

	t.Run("empty alias", func(t *testing.T) {
		s := base
		s.Aliases = []string{""}
		_, err := NewFromSpecs([]NutrientSpec{s}, testLogger())
		assert.Error(t, err)
	})
}

func TestNewFromSpecs_DuplicateAliasFirstWins(t *testing.T) {
	first := NutrientSpec{
		Key:       "zinc",
		Unit:      "mcg/dL",
		Normal:    Range{Low: 60, High: 120},
		Plausible: Range{Low: 10, High: 500},
		Aliases:   []string{"zn"},
	}
	second := NutrientSpec{
		Key:       "copper",
		Unit:      "mcg/dL",
		Normal:    Range{Low: 70, High: 140},
		Plausible: Range{Low: 10, High: 500},
		Aliases:   []string{"zn"}, // misconfigured, claims zinc's alias
	}

	reg, err := NewFromSpecs([]NutrientSpec{first, second}, testLogger())
	require.NoError(t, err, "duplicate alias across nutrients is not fatal")

	spec, ok := reg.Lookup("zinc")
	require.True(t, ok)
	assert.Contains(t, spec.Aliases, "zn")

	spec, ok = reg.Lookup("copper")
	require.True(t, ok)
	assert.NotContains(t, spec.Aliases, "zn")
}

func TestRange_Contains(t *testing.T) {
	r := Range{Low: 30, High: 100}
	assert.True(t, r.Contains(30))
	assert.True(t, r.Contains(100))
	assert.True(t, r.Contains(55.5))
	assert.False(t, r.Contains(29.99))
	assert.False(t, r.Contains(100.01))
}
