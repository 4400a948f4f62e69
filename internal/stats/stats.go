// Package stats computes spending statistics from stored invoices.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/notaflow/notaflow/internal/category"
	"github.com/notaflow/notaflow/internal/model"
)

// Period selects the window for detailed statistics.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod validates a period name from user input.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown period %q (want week, month, or year)", s)
	}
}

// Overview holds lifetime statistics across all of a user's invoices.
type Overview struct {
	TotalInvoices       int
	TotalProducts       int
	TotalLists          int
	TotalSpent          float64
	TotalSavings        float64
	AverageInvoiceValue float64
	MostShoppedStore    string
	CurrentMonthSpent   float64
}

// CategoryTotal aggregates spending within one product category.
type CategoryTotal struct {
	Category string
	Total    float64
	Count    float64
}

// TrendPoint is total spending for one bucket of the trend timeline.
type TrendPoint struct {
	Date   string
	Amount float64
}

// Summary holds statistics restricted to a single period.
type Summary struct {
	Period        Period
	PeriodSpent   float64
	PeriodSavings float64
	InvoiceCount  int
	ProductCount  int
	TopCategories []CategoryTotal
	SpendingTrend []TrendPoint
}

// ComputeOverview derives lifetime statistics from a user's invoices and
// shopping list count. Invoices are dated by their emission date.
func ComputeOverview(invoices []model.NormalizedInvoice, listCount int, now time.Time) Overview {
	ov := Overview{
		TotalInvoices:    len(invoices),
		TotalLists:       listCount,
		MostShoppedStore: "Nenhuma",
	}

	storeVisits := make(map[string]int)
	for i := range invoices {
		inv := &invoices[i]
		ov.TotalProducts += len(inv.Items)
		ov.TotalSpent += inv.TotalAmount
		ov.TotalSavings += inv.Discounts
		storeVisits[inv.StoreName]++

		if inv.EmissionDate.Year() == now.Year() && inv.EmissionDate.Month() == now.Month() {
			ov.CurrentMonthSpent += inv.TotalAmount
		}
	}

	if ov.TotalInvoices > 0 {
		ov.AverageInvoiceValue = ov.TotalSpent / float64(ov.TotalInvoices)
	}

	bestCount := 0
	for store, count := range storeVisits {
		if count > bestCount || (count == bestCount && store < ov.MostShoppedStore) {
			ov.MostShoppedStore = store
			bestCount = count
		}
	}

	return ov
}

// Compute derives period statistics from a user's invoices. Only invoices
// whose emission date falls within the period ending at now are counted.
func Compute(invoices []model.NormalizedInvoice, period Period, now time.Time) Summary {
	start := periodStart(period, now)

	summary := Summary{Period: period}
	categories := make(map[string]*CategoryTotal)
	trend := make(map[string]float64)

	for i := range invoices {
		inv := &invoices[i]
		if inv.EmissionDate.Before(start) {
			continue
		}

		summary.InvoiceCount++
		summary.ProductCount += len(inv.Items)
		summary.PeriodSpent += inv.TotalAmount
		summary.PeriodSavings += inv.Discounts
		trend[trendKey(inv.EmissionDate, period)] += inv.TotalAmount

		for _, item := range inv.Items {
			name := item.Category
			if name == "" {
				name = category.FallbackCategory
			}
			ct, ok := categories[name]
			if !ok {
				ct = &CategoryTotal{Category: name}
				categories[name] = ct
			}
			ct.Total += item.TotalPrice
			ct.Count += item.Quantity
		}
	}

	summary.TopCategories = topCategories(categories, 5)
	summary.SpendingTrend = sortedTrend(trend)
	return summary
}

func periodStart(period Period, now time.Time) time.Time {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// trendKey buckets spending by day, month, or year depending on the
// period granularity.
func trendKey(date time.Time, period Period) string {
	switch period {
	case PeriodWeek:
		return date.Format("2006-01-02")
	case PeriodYear:
		return date.Format("2006")
	default:
		return date.Format("2006-01")
	}
}

func topCategories(categories map[string]*CategoryTotal, limit int) []CategoryTotal {
	result := make([]CategoryTotal, 0, len(categories))
	for _, ct := range categories {
		result = append(result, *ct)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Category < result[j].Category
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

func sortedTrend(trend map[string]float64) []TrendPoint {
	result := make([]TrendPoint, 0, len(trend))
	for date, amount := range trend {
		result = append(result, TrendPoint{Date: date, Amount: amount})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}
