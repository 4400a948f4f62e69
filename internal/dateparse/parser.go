// Package dateparse converts untrusted emission-date strings from the
// scraping backend into calendar dates with an explicit trust signal.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/notaflow/notaflow/internal/model"
)

// Absolute plausibility bounds for emission dates. Receipts older than 2020
// or dated past the end of next year are treated as scraper garbage.
var minEmissionDate = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local)

// componentOrder describes where day/month/year (and optional time) sit in
// a pattern's capture groups.
type componentOrder int

const (
	orderDMY componentOrder = iota
	orderYMD
)

type datePattern struct {
	re      *regexp.Regexp
	order   componentOrder
	hasTime bool
}

// Patterns are tried in order; the first structural match wins. All are
// anchored so a partial hit never short-circuits a later, fuller pattern.
var datePatterns = []datePattern{
	// DD/MM/YYYY HH:MM:SS
	{re: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})\s+(\d{1,2}):(\d{1,2}):(\d{1,2})$`), order: orderDMY, hasTime: true},
	// DD/MM/YYYY HH:MM
	{re: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})\s+(\d{1,2}):(\d{1,2})$`), order: orderDMY, hasTime: true},
	// DD/MM/YYYY
	{re: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`), order: orderDMY},
	// DD-MM-YYYY HH:MM:SS
	{re: regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})\s+(\d{1,2}):(\d{1,2}):(\d{1,2})$`), order: orderDMY, hasTime: true},
	// YYYY-MM-DD HH:MM:SS (ISO-like)
	{re: regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})\s+(\d{1,2}):(\d{1,2}):(\d{1,2})$`), order: orderYMD, hasTime: true},
}

// Layouts for the generic last-resort attempt. Day-first layouts are
// deliberately absent: anything day-first the backend emits is already
// covered by the structural patterns above, and a day-first fallback would
// resurrect dates the bounds check just rejected.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Parser turns date strings into DateParseResults. The zero value is not
// usable; construct with NewParser.
type Parser struct {
	now func() time.Time
}

// NewParser returns a Parser that uses the wall clock.
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// Parse validates and parses an emission-date string. It never fails: on
// unparseable input the result carries the current time, low confidence and
// a warning trail. See ParseAt for pinning "now".
func (p *Parser) Parse(input string) model.DateParseResult {
	return p.ParseAt(input, p.now())
}

// ParseAt is Parse with an explicit reference instant, so one ingestion
// call can share a single "now" between the scan timestamp and the
// recency-based confidence scoring.
func (p *Parser) ParseAt(input string, now time.Time) model.DateParseResult {
	warnings := []string{}

	if input == "" {
		return model.DateParseResult{
			IsValid:        false,
			ParsedDate:     now,
			OriginalString: input,
			Confidence:     model.ConfidenceLow,
			Warnings:       []string{"Data não fornecida ou inválida"},
		}
	}

	trimmed := strings.TrimSpace(input)

	for _, pat := range datePatterns {
		match := pat.re.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}

		parsed, ok := buildDate(match, pat)
		if !ok {
			warnings = append(warnings, "Data resultante é inválida")
			continue
		}

		valid, confidence, vw := validateDate(parsed, now)
		warnings = append(warnings, vw...)
		if valid {
			return model.DateParseResult{
				IsValid:        true,
				ParsedDate:     parsed,
				OriginalString: input,
				Confidence:     confidence,
				Warnings:       warnings,
			}
		}
	}

	// Generic last resort for formats outside the known set.
	for _, layout := range fallbackLayouts {
		parsed, err := time.ParseInLocation(layout, trimmed, time.Local)
		if err != nil {
			continue
		}
		warnings = append(warnings, "Usou interpretação genérica de data")
		return model.DateParseResult{
			IsValid:        true,
			ParsedDate:     parsed,
			OriginalString: input,
			Confidence:     model.ConfidenceLow,
			Warnings:       warnings,
		}
	}

	warnings = append(warnings, "Não foi possível interpretar a data, usando data atual")
	return model.DateParseResult{
		IsValid:        false,
		ParsedDate:     now,
		OriginalString: input,
		Confidence:     model.ConfidenceLow,
		Warnings:       warnings,
	}
}

// buildDate constructs a local-time date from a pattern match and reports
// whether the date components survived normalization. time.Date rolls
// overflowing components forward ("31/02/2024" becomes March 2nd), so a
// round-trip comparison catches impossible calendar dates.
func buildDate(match []string, pat datePattern) (time.Time, bool) {
	var day, month, year int
	switch pat.order {
	case orderDMY:
		day, month, year = atoi(match[1]), atoi(match[2]), atoi(match[3])
	case orderYMD:
		year, month, day = atoi(match[1]), atoi(match[2]), atoi(match[3])
	}

	var hour, minute, second int
	if pat.hasTime {
		hour = atoi(match[4])
		minute = atoi(match[5])
		if len(match) > 6 {
			second = atoi(match[6])
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// validateDate applies the plausibility bounds and classifies confidence by
// distance from now.
func validateDate(date, now time.Time) (bool, model.Confidence, []string) {
	maxEmissionDate := time.Date(now.Year()+1, time.December, 31, 23, 59, 59, 0, time.Local)

	if date.Before(minEmissionDate) {
		return false, model.ConfidenceLow, []string{"Data muito antiga, pode estar incorreta"}
	}
	if date.After(maxEmissionDate) {
		return false, model.ConfidenceLow, []string{"Data no futuro, pode estar incorreta"}
	}

	diff := now.Sub(date)
	if diff < 0 {
		diff = -diff
	}
	diffDays := diff.Hours() / 24

	switch {
	case diffDays > 365:
		return true, model.ConfidenceMedium, []string{"Data com mais de 1 ano de diferença"}
	case diffDays > 30:
		return true, model.ConfidenceMedium, []string{"Data com mais de 30 dias de diferença"}
	default:
		return true, model.ConfidenceHigh, nil
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
