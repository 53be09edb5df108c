package diagnose

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/extract"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
)

func runExtraction(t *testing.T, text string) extract.Result {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg, err := registry.New(logger)
	require.NoError(t, err)
	return extract.New(reg, extract.WithLogger(logger)).Extract(text)
}

func TestRun_NoText(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		d := Run(text, runExtraction(t, text))
		assert.Equal(t, constants.TextQualityNoText, d.TextQuality)
		assert.NotEmpty(t, d.PotentialIssues)
		assert.NotEmpty(t, d.Suggestions)
	}
}

func TestRun_InsufficientText(t *testing.T) {
	text := "scan failed"
	d := Run(text, runExtraction(t, text))
	assert.Equal(t, constants.TextQualityInsufficient, d.TextQuality)
	assert.NotEmpty(t, d.Suggestions)
}

func TestRun_NotABloodTest(t *testing.T) {
	text := "This is a general health document with no blood test values or numbers in it whatsoever."
	res := runExtraction(t, text)
	require.Zero(t, res.Len())

	d := Run(text, res)
	// Long prose without a single numeric token can never yield values, so
	// the quality must not read as good.
	assert.Equal(t, constants.TextQualityInsufficient, d.TextQuality)
	assert.Contains(t, d.PotentialIssues, "no numeric values present in the text")
}

func TestRun_NumberFreeTextNeverGood(t *testing.T) {
	text := `Comprehensive wellness summary prepared by the laboratory after the
annual visit. The physician reviewed the complete metabolic panel together
with the lipid panel and thyroid screen and discussed every marker with the
patient in detail during the follow-up consultation.`
	res := runExtraction(t, text)
	require.Zero(t, res.Len())

	d := Run(text, res)
	assert.NotEqual(t, constants.TextQualityGood, d.TextQuality)
	assert.Equal(t, constants.TextQualityInsufficient, d.TextQuality)
}

func TestRun_IndicatorsWithoutValues(t *testing.T) {
	text := `
Lab Report - Patient Blood Tests
Vitamin D level was checked
Iron studies were performed
Results are pending review
`
	res := runExtraction(t, text)
	require.Zero(t, res.Len())

	d := Run(text, res)
	// Narrative with indicators but no digits: flagged, not rated good.
	assert.Equal(t, constants.TextQualityInsufficient, d.TextQuality)
	assert.NotEmpty(t, d.DetectedPatterns)
	assert.NotEmpty(t, d.PotentialIssues)
	assert.NotEmpty(t, d.Suggestions)
}

func TestRun_SparseResult(t *testing.T) {
	text := `
Laboratory report for annual physical examination and blood work panel.
Vitamin D: 25 ng/mL
Several additional panels were ordered but results are printed on the
following pages of the original document.
`
	res := runExtraction(t, text)
	require.Equal(t, 1, res.Len())

	d := Run(text, res)
	assert.Equal(t, constants.TextQualityGood, d.TextQuality)
	assert.Contains(t, d.PotentialIssues, "fewer values extracted than a typical panel contains")
}

func TestRun_DetectsStructureAndFootnotes(t *testing.T) {
	text := `
Test            | Result | Unit
Mystery Assay   | 42     | zorkles
Footnote: value flagged with * pending review
`
	d := Run(text, runExtraction(t, text))
	assert.Contains(t, d.DetectedPatterns, "table-like structure")
	assert.Contains(t, d.DetectedPatterns, "footnote markers")
}
