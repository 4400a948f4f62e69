package ingest

import (
	"regexp"
	"strings"
)

var (
	spaceRun = regexp.MustCompile(`\s+`)
	commaRun = regexp.MustCompile(`\s*,[\s,]*`)
)

// CleanAddress collapses the repeated commas and whitespace the scraper
// leaves behind when flattening the HTML address block.
func CleanAddress(addr string) string {
	s := spaceRun.ReplaceAllString(strings.TrimSpace(addr), " ")
	s = commaRun.ReplaceAllString(s, ", ")
	return strings.Trim(s, " ,")
}
