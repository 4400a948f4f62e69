package scraper

import (
	"regexp"
	"strings"
)

// SEFAZ portals vary by state; the URL just has to look like a fiscal
// receipt consultation endpoint.
var sefazMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)sefaz`),
	regexp.MustCompile(`(?i)fazenda`),
	regexp.MustCompile(`(?i)nfce`),
	regexp.MustCompile(`(?i)nfe`),
	regexp.MustCompile(`(?i)consulta`),
}

var urlPattern = regexp.MustCompile(`(?i)(https?://\S+)`)

// IsSEFAZURL reports whether the string looks like a state tax authority
// receipt URL.
func IsSEFAZURL(raw string) bool {
	if !strings.Contains(raw, "http://") && !strings.Contains(raw, "https://") {
		return false
	}
	for _, marker := range sefazMarkers {
		if marker.MatchString(raw) {
			return true
		}
	}
	return false
}

// ExtractInvoiceURL pulls a fiscal receipt URL out of raw QR code content.
// The QR payload is sometimes the bare URL and sometimes a blob with the
// URL embedded in it; only the URL itself is ever returned, since it is
// what gets sent to the scraping backend.
func ExtractInvoiceURL(qrData string) (string, bool) {
	match := urlPattern.FindString(qrData)
	if match == "" {
		return "", false
	}

	// Markers may sit outside the URL in decorated payloads.
	if IsSEFAZURL(match) || IsSEFAZURL(qrData) {
		return match, true
	}

	return "", false
}
