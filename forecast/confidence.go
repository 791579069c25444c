package forecast

import (
	"math"

	"app/models"
)

// ClassifyConfidence scores a series into a discrete confidence tier based on
// how much history exists and how stable it is. The function is monotonic in
// both: more months never lowers the tier, and lower relative variance never
// lowers it either.
func ClassifyConfidence(series []models.MonthlyUsage, policy Policy) models.Confidence {
	nonZero := 0
	for _, m := range series {
		if m.Quantity > 0 {
			nonZero++
		}
	}
	if nonZero < policy.MinNonZeroMonths {
		return models.ConfidenceColdStart
	}

	// High relative variance caps the tier at LOW no matter how long the
	// history is.
	if coefficientOfVariation(series) >= policy.MaxCoefficientOfVariation {
		return models.ConfidenceLow
	}

	switch {
	case len(series) <= policy.ShortHistoryMonths:
		return models.ConfidenceLow
	case len(series) <= policy.MediumHistoryMonths:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceHigh
	}
}

// coefficientOfVariation is the population standard deviation over the mean.
// A zero-mean series has no meaningful ratio and reports 0.
func coefficientOfVariation(series []models.MonthlyUsage) float64 {
	if len(series) == 0 {
		return 0
	}

	var sum float64
	for _, m := range series {
		sum += float64(m.Quantity)
	}
	mean := sum / float64(len(series))
	if mean == 0 {
		return 0
	}

	var sqDiff float64
	for _, m := range series {
		d := float64(m.Quantity) - mean
		sqDiff += d * d
	}
	stdDev := math.Sqrt(sqDiff / float64(len(series)))

	return stdDev / mean
}

// meanUsage is the average monthly quantity across the series.
func meanUsage(series []models.MonthlyUsage) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, m := range series {
		sum += float64(m.Quantity)
	}
	return sum / float64(len(series))
}
