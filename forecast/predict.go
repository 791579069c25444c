package forecast

import (
	"fmt"
	"math"

	"app/models"
)

// Predict combines average usage, trend and confidence into a forward-looking
// quantity for the requested horizon, plus a stockout horizon estimate. It
// assumes monthsAhead was validated at the boundary (1..policy.MaxMonthsAhead)
// and is total: every valid input produces a well-defined prediction, cold
// starts included.
func Predict(series []models.MonthlyUsage, trend float64, confidence models.Confidence, snap models.DrugSnapshot, monthsAhead int, policy Policy) models.DrugPrediction {
	avg := meanUsage(series)

	pred := models.DrugPrediction{
		DrugID:              snap.DrugID,
		DrugName:            snap.Name,
		CurrentStock:        snap.CurrentStock,
		AverageMonthlyUsage: avg,
		Confidence:          confidence,
		ReorderLevel:        snap.ReorderLevel,
		HistoricalData:      series,
	}

	if confidence == models.ConfidenceColdStart {
		// Too little history to trust a trend; fall back to the average
		// or, with zero history, a conservative floor so a brand-new drug
		// with shelf presence never gets a "buy nothing" forecast.
		base := avg
		if base <= 0 {
			base = float64(coldStartFloor(snap.ReorderLevel, policy))
		}
		pred.PredictedQuantity = roundNonNegative(base * float64(monthsAhead))
		pred.Trend = 0
		pred.Method = models.MethodColdStartFloor
	} else {
		pred.PredictedQuantity = roundNonNegative(avg * (1 + trend) * float64(monthsAhead))
		pred.Trend = trend
		pred.Method = models.MethodTrendAdjusted
	}

	// Stockout horizon only makes sense with real consumption; a genuinely
	// idle drug gets no horizon rather than a false alarm.
	if avg > 0 {
		days := math.Round(float64(snap.CurrentStock)/(avg/30)*10) / 10
		pred.DaysUntilStockout = &days
	}

	if confidence != models.ConfidenceHigh {
		pred.Reasoning = buildReasoning(series, trend, confidence, policy)
	}

	return pred
}

func coldStartFloor(reorderLevel int, policy Policy) int {
	if reorderLevel > policy.ColdStartFloor {
		return reorderLevel
	}
	return policy.ColdStartFloor
}

func roundNonNegative(v float64) int {
	if v < 0 {
		return 0
	}
	return int(math.Round(v))
}

func buildReasoning(series []models.MonthlyUsage, trend float64, confidence models.Confidence, policy Policy) string {
	months := len(series)
	nonZero := 0
	for _, m := range series {
		if m.Quantity > 0 {
			nonZero++
		}
	}

	switch confidence {
	case models.ConfidenceColdStart:
		return fmt.Sprintf("Only %d of %d months show any usage; predicting from the reorder-level floor until more history accumulates.", nonZero, months)
	case models.ConfidenceLow:
		return fmt.Sprintf("Based on %d months of history with unstable or limited usage (trend %+.1f%% per month); treat as a rough estimate.", months, trend*100)
	default:
		direction := "steady"
		if trend > policy.TrendSignalThreshold {
			direction = "increasing"
		} else if trend < -policy.TrendSignalThreshold {
			direction = "decreasing"
		}
		return fmt.Sprintf("Based on %d months of %s usage (trend %+.1f%% per month).", months, direction, trend*100)
	}
}
