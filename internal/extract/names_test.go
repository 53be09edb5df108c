package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_SubstringMatch(t *testing.T) {
	e := newExtractor(t)

	tests := []struct {
		name string
		unit string
		key  string
		ok   bool
	}{
		{"Vitamin D (25-OH)", "ng/mL", "vitamin_d", true},
		{"25(OH) Vitamin D", "", "vitamin_d", true},
		{"Total Cholesterol", "mg/dL", "total_cholesterol", true},
		{"LDL Cholesterol", "", "ldl_cholesterol", true},
		{"Serum Iron Studies", "", "iron", true},
		{"Patient Name", "", "", false},
		{"Reference Range", "", "", false},
		{"x", "", "", false},
		{"123", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := e.resolver.resolve(tt.name, tt.unit)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestResolve_LongestNameWins(t *testing.T) {
	e := newExtractor(t)

	// "cholesterol" alone is an alias of total_cholesterol, but the longer
	// "hdl cholesterol" match must take precedence.
	key, ok := e.resolver.resolve("HDL Cholesterol", "mg/dL")
	require.True(t, ok)
	assert.Equal(t, "hdl_cholesterol", key)
}

func TestResolve_OCRCanonicalization(t *testing.T) {
	e := newExtractor(t)

	key, ok := e.resolver.resolve("lron, Serum", "mcg/dL")
	require.True(t, ok)
	assert.Equal(t, "iron", key)

	key, ok = e.resolver.resolve("B-12 Cobalarnin", "pg/mL")
	require.True(t, ok)
	assert.Equal(t, "vitamin_b12", key)
}

func TestResolve_UnitGate(t *testing.T) {
	e := newExtractor(t)

	// A recognizable but incompatible unit blocks the match.
	_, ok := e.resolver.resolve("Vitamin D", "pg/mL")
	assert.False(t, ok)

	// An absent unit never blocks.
	key, ok := e.resolver.resolve("Vitamin D", "")
	require.True(t, ok)
	assert.Equal(t, "vitamin_d", key)
}

func TestResolve_WordOverlapFallback(t *testing.T) {
	e := newExtractor(t)

	// No full name or alias appears as a substring, but enough canonical
	// words survive for the overlap fallback.
	key, ok := e.resolver.resolve("acid, uric (serum)", "mg/dL")
	require.True(t, ok)
	assert.Equal(t, "uric_acid", key)
}

func TestParseValue(t *testing.T) {
	v, err := parseValue("25.8")
	require.NoError(t, err)
	assert.Equal(t, 25.8, v)

	v, err = parseValue("13,5")
	require.NoError(t, err)
	assert.Equal(t, 13.5, v)

	_, err = parseValue("abc")
	assert.Error(t, err)

	_, err = parseValue("")
	assert.Error(t, err)
}

func TestNormalizeText(t *testing.T) {
	in := "a\r\nb\r\rc\n\n\n\n\nd   \ne\t\n"
	out := NormalizeText(in)
	assert.Equal(t, "a\nb\n\nc\n\nd\ne\n", out)

	// Tabs and wide spaces inside lines are layout signals and must survive.
	assert.Equal(t, "a\tb   c", NormalizeText("a\tb   c"))
	assert.Equal(t, "", NormalizeText(""))
}
