// Package display renders dates and amounts in Brazilian conventions.
package display

import (
	"fmt"
	"strings"
	"time"
)

// saoPaulo is the zone used for rendering. Stored instants keep their own
// zone; only display converts.
var saoPaulo = loadSaoPaulo()

func loadSaoPaulo() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}

// Date renders a date as DD/MM/YYYY.
func Date(t time.Time) string {
	return t.In(saoPaulo).Format("02/01/2006")
}

// DateTime renders a date as DD/MM/YYYY HH:MM.
func DateTime(t time.Time) string {
	return t.In(saoPaulo).Format("02/01/2006 15:04")
}

// RelativeTime describes how long ago a moment was, in Portuguese.
func RelativeTime(t time.Time, now time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case minutes < 1:
		return "Agora mesmo"
	case minutes < 60:
		return fmt.Sprintf("%d min atrás", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh atrás", hours)
	case days < 7:
		return fmt.Sprintf("%d dias atrás", days)
	case days < 30:
		return fmt.Sprintf("%d semanas atrás", days/7)
	case days < 365:
		return fmt.Sprintf("%d meses atrás", days/30)
	default:
		return fmt.Sprintf("%d anos atrás", days/365)
	}
}

// Currency renders an amount as Brazilian reais, e.g. "R$ 1.234,56".
func Currency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(amount*100 + 0.5)
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped.String(), frac)
}
