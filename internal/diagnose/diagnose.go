// Package diagnose explains weak or empty extraction results. It never feeds
// back into extraction; it only inspects the raw text for failure signatures
// and produces human-readable findings for the consumer.
package diagnose

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/extract"
)

// Diagnosis describes why extraction over a document produced little or
// nothing. All slices are ordered most-significant first.
type Diagnosis struct {
	TextQuality      constants.TextQuality `json:"text_quality"`
	PotentialIssues  []string              `json:"potential_issues"`
	Suggestions      []string              `json:"suggestions"`
	DetectedPatterns []string              `json:"detected_patterns"`
}

// indicatorKeywords are phrases that mark a document as blood-test related
// even when no value could be parsed out of it.
var indicatorKeywords = []string{
	"blood test", "lab report", "laboratory", "blood work", "bloodwork",
	"reference range", "reference interval", "specimen", "serum", "plasma",
	"vitamin", "hemoglobin", "cholesterol", "glucose", "ferritin",
	"thyroid", "panel", "cbc", "metabolic",
}

// unitKeywords are unit tokens whose presence suggests measurements exist in
// the text even if no strategy managed to bind them to a nutrient name.
var unitKeywords = []string{
	"ng/ml", "pg/ml", "mcg/dl", "mg/dl", "g/dl", "miu/l", "meq/l",
	"u/l", "iu/l", "mmol/l", "umol/l", "nmol/l",
}

var (
	reNumericToken = regexp.MustCompile(`\b\d+(?:[.,]\d+)?\b`)
	reWideGap      = regexp.MustCompile(` {3,}|\t`)
	reFootnote     = regexp.MustCompile(`[*†‡#]|\[\d\]`)
)

const (
	minWords      = 10
	sparseResults = 3
)

// Run classifies the text and explains the gap between what the document
// appears to contain and what extraction actually produced. Callers invoke it
// when the result is empty or below their own sufficiency threshold.
func Run(text string, result extract.Result) Diagnosis {
	d := Diagnosis{TextQuality: constants.TextQualityGood}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		d.TextQuality = constants.TextQualityNoText
		d.PotentialIssues = append(d.PotentialIssues, "document contains no extractable text")
		d.Suggestions = append(d.Suggestions,
			"the file may be a scanned image; run OCR before re-submitting",
			"upload a text-based copy of the report if one is available")
		return d
	}

	lower := strings.ToLower(trimmed)
	words := len(strings.Fields(trimmed))
	numbers := len(reNumericToken.FindAllString(trimmed, -1))
	if words < minWords {
		d.TextQuality = constants.TextQualityInsufficient
		d.PotentialIssues = append(d.PotentialIssues, "document text is too short to contain a lab panel")
		d.Suggestions = append(d.Suggestions, "upload a clearer or more complete scan of the report")
	}
	if numbers == 0 {
		// Without a single numeric token the text cannot yield values, no
		// matter how long it is.
		d.TextQuality = constants.TextQualityInsufficient
	}

	for _, kw := range indicatorKeywords {
		if strings.Contains(lower, kw) {
			d.DetectedPatterns = append(d.DetectedPatterns, "blood test keyword: "+kw)
		}
	}
	for _, u := range unitKeywords {
		if strings.Contains(lower, u) {
			d.DetectedPatterns = append(d.DetectedPatterns, "measurement unit: "+u)
		}
	}

	if reWideGap.MatchString(trimmed) || strings.Contains(trimmed, "|") {
		d.DetectedPatterns = append(d.DetectedPatterns, "table-like structure")
	}
	if reFootnote.MatchString(trimmed) {
		d.DetectedPatterns = append(d.DetectedPatterns, "footnote markers")
		d.PotentialIssues = append(d.PotentialIssues, "footnote markers may be attached to values and confuse parsing")
	}

	hasKeywords := len(d.DetectedPatterns) > 0
	switch {
	case result.Len() == 0 && numbers == 0:
		d.PotentialIssues = append(d.PotentialIssues, "no numeric values present in the text")
		if hasKeywords {
			d.Suggestions = append(d.Suggestions, "the report mentions blood tests but results may be on a page that was not captured")
		}
		d.Suggestions = append(d.Suggestions, "enter the values manually if the report cannot be re-scanned")
	case result.Len() == 0 && hasKeywords:
		d.PotentialIssues = append(d.PotentialIssues, "blood test indicators found but no values could be matched to known nutrients")
		d.Suggestions = append(d.Suggestions,
			"the report layout may be unusual; try a text export instead of a scan",
			"enter the values manually as a fallback")
	case result.Len() == 0:
		d.PotentialIssues = append(d.PotentialIssues, "text does not look like a blood test report")
		d.Suggestions = append(d.Suggestions, "confirm the uploaded document is a laboratory report")
	case result.Len() < sparseResults:
		d.PotentialIssues = append(d.PotentialIssues, "fewer values extracted than a typical panel contains")
		d.Suggestions = append(d.Suggestions, "check whether later report pages were included in the upload")
	}

	return d
}
