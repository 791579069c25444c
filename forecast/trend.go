package forecast

import "app/models"

// EstimateTrend derives a normalized month-over-month growth rate from the
// series: an ordinary least squares slope of quantity against month index,
// divided by the series mean. Normalizing by the mean makes the signal
// scale-independent, so a +0.15 means 15% growth per month whether the drug
// moves ten units or ten thousand.
//
// Fewer than two months, or a series that is all zeros, gives no signal and
// returns 0 rather than an error.
func EstimateTrend(series []models.MonthlyUsage) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, m := range series {
		x := float64(i)
		y := float64(m.Quantity)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	mean := sumY / float64(n)
	if mean == 0 {
		return 0
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	slope := (float64(n)*sumXY - sumX*sumY) / denom

	return slope / mean
}
