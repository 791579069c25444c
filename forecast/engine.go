package forecast

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"app/models"
)

// DrugHistory pairs a drug's inventory snapshot with its usage records for
// the lookback window. Each drug's pipeline reads only its own data, which is
// what makes the branch-wide pass trivially parallel.
type DrugHistory struct {
	Snapshot models.DrugSnapshot
	Records  []models.UsageRecord
}

// ForecastBranch runs the full prediction pipeline for every drug in the
// branch and returns the predictions sorted by stockout proximity, most
// urgent first. All inputs are read-only; the computation is deterministic
// for identical inputs.
func ForecastBranch(drugs []DrugHistory, windowStart, windowEnd time.Time, monthsAhead int, policy Policy) []models.DrugPrediction {
	predictions := make([]models.DrugPrediction, len(drugs))

	var wg sync.WaitGroup
	for i := range drugs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			predictions[i] = forecastDrug(drugs[i], windowStart, windowEnd, monthsAhead, policy)
		}(i)
	}
	wg.Wait()

	sortByUrgency(predictions)
	return predictions
}

func forecastDrug(drug DrugHistory, windowStart, windowEnd time.Time, monthsAhead int, policy Policy) models.DrugPrediction {
	// The window is validated before the branch pass starts, so the series
	// build cannot fail here.
	series, _ := BuildMonthlySeries(drug.Records, windowStart, windowEnd)
	trend := EstimateTrend(series)
	confidence := ClassifyConfidence(series, policy)
	return Predict(series, trend, confidence, drug.Snapshot, monthsAhead, policy)
}

// sortByUrgency orders predictions by stockout horizon ascending, horizonless
// drugs last, with predicted quantity and drug ID as stable tie-breakers.
func sortByUrgency(predictions []models.DrugPrediction) {
	const noHorizon = 1e18
	horizon := func(p models.DrugPrediction) float64 {
		if p.DaysUntilStockout != nil {
			return *p.DaysUntilStockout
		}
		return noHorizon
	}
	sort.Slice(predictions, func(i, j int) bool {
		hi, hj := horizon(predictions[i]), horizon(predictions[j])
		if hi != hj {
			return hi < hj
		}
		if predictions[i].PredictedQuantity != predictions[j].PredictedQuantity {
			return predictions[i].PredictedQuantity > predictions[j].PredictedQuantity
		}
		return predictions[i].DrugID < predictions[j].DrugID
	})
}

// BuildPredictionResponse wraps sorted predictions into the branch payload
// with the aggregate counters the dashboard consumes.
func BuildPredictionResponse(branchID string, monthsAhead int, predictions []models.DrugPrediction, policy Policy, now time.Time) models.PredictionResponse {
	highConfidence := 0
	coldStart := 0
	trendingUp := 0
	for _, p := range predictions {
		switch p.Confidence {
		case models.ConfidenceHigh:
			highConfidence++
		case models.ConfidenceColdStart:
			coldStart++
		}
		if p.Trend > policy.TrendSignalThreshold {
			trendingUp++
		}
	}

	return models.PredictionResponse{
		BranchID:                  branchID,
		PredictionDate:            now,
		MonthsAhead:               monthsAhead,
		TotalDrugsAnalyzed:        len(predictions),
		HighConfidencePredictions: highConfidence,
		ColdStartItems:            coldStart,
		Predictions:               predictions,
		Summary: fmt.Sprintf("%d drugs analyzed: %d high confidence, %d cold start, %d trending up more than %.0f%% per month.",
			len(predictions), highConfidence, coldStart, trendingUp, policy.TrendSignalThreshold*100),
	}
}
