package forecast

import (
	"fmt"
	"time"

	"app/models"
)

const monthLayout = "2006-01"

// BuildMonthlySeries buckets raw usage records into a gap-free monthly series
// covering every calendar month from windowStart through windowEnd inclusive.
// Months with no records get an explicit zero entry so that downstream
// averages and trends are not biased upward by skipped idle months.
func BuildMonthlySeries(records []models.UsageRecord, windowStart, windowEnd time.Time) ([]models.MonthlyUsage, error) {
	start := firstOfMonth(windowStart)
	end := firstOfMonth(windowEnd)
	if start.After(end) {
		return nil, fmt.Errorf("invalid window: start %s is after end %s", start.Format(monthLayout), end.Format(monthLayout))
	}

	totals := make(map[string]int)
	for _, r := range records {
		m := firstOfMonth(r.DispensedAt)
		if m.Before(start) || m.After(end) {
			continue
		}
		totals[m.Format(monthLayout)] += r.Quantity
	}

	var series []models.MonthlyUsage
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		qty := totals[m.Format(monthLayout)]
		if qty < 0 {
			// Returns can outweigh dispenses within a month; usage never
			// goes below zero.
			qty = 0
		}
		series = append(series, models.MonthlyUsage{Month: m.Format(monthLayout), Quantity: qty})
	}

	return series, nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
