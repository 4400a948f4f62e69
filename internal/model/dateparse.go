package model

import "time"

// Confidence indicates how much a parsed date can be trusted.
type Confidence string

const (
	// ConfidenceHigh means the date parsed cleanly and is recent.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium means the date parsed but is far from now.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow means parsing failed or fell back to a guess.
	ConfidenceLow Confidence = "low"
)

// DateParseResult is the outcome of parsing an emission-date string.
// It always carries a usable date; quality is signaled through Confidence
// and Warnings rather than errors.
type DateParseResult struct {
	ParsedDate     time.Time
	OriginalString string
	Confidence     Confidence
	Warnings       []string
	IsValid        bool
}
