package constants

// TextQuality classifies how workable a raw report text is.
type TextQuality string

const (
	TextQualityNoText       TextQuality = "no_text"      // empty or whitespace-only input
	TextQualityInsufficient TextQuality = "insufficient" // too little content to expect matches
	TextQualityGood         TextQuality = "good"         // enough content; failures are layout-related
)

// ValueStatus positions an extracted value against its clinical normal range.
type ValueStatus string

const (
	ValueStatusLow    ValueStatus = "LOW"
	ValueStatusNormal ValueStatus = "NORMAL"
	ValueStatusHigh   ValueStatus = "HIGH"
)
