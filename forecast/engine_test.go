package forecast

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/models"
)

func branchFixture() ([]DrugHistory, time.Time, time.Time) {
	windowStart := date(2025, time.January, 1)
	windowEnd := date(2025, time.June, 30)

	busy := DrugHistory{
		Snapshot: models.DrugSnapshot{DrugID: "busy", Name: "Paracetamol", CurrentStock: 40, UnitCost: decimal.NewFromInt(2), ReorderLevel: 100},
	}
	for month := 0; month < 6; month++ {
		busy.Records = append(busy.Records, models.UsageRecord{
			DrugID:      "busy",
			BranchID:    "b1",
			DispensedAt: windowStart.AddDate(0, month, 10),
			Quantity:    200 + month*10,
		})
	}

	fresh := DrugHistory{
		Snapshot: models.DrugSnapshot{DrugID: "fresh", Name: "New Antibiotic", CurrentStock: 30, UnitCost: decimal.NewFromInt(9), ReorderLevel: 25},
	}

	idle := DrugHistory{
		Snapshot: models.DrugSnapshot{DrugID: "idle", Name: "Rarely Used", CurrentStock: 500, UnitCost: decimal.NewFromInt(1), ReorderLevel: 10},
		Records: []models.UsageRecord{
			{DrugID: "idle", BranchID: "b1", DispensedAt: windowStart.AddDate(0, 1, 2), Quantity: 2},
			{DrugID: "idle", BranchID: "b1", DispensedAt: windowStart.AddDate(0, 4, 2), Quantity: 1},
		},
	}

	return []DrugHistory{busy, fresh, idle}, windowStart, windowEnd
}

func TestForecastBranchSortsByUrgency(t *testing.T) {
	drugs, start, end := branchFixture()
	policy := DefaultPolicy()

	predictions := ForecastBranch(drugs, start, end, 1, policy)
	require.Len(t, predictions, 3)

	// the heavily used drug is closest to stockout and comes first
	assert.Equal(t, "busy", predictions[0].DrugID)
	require.NotNil(t, predictions[0].DaysUntilStockout)

	// the zero-history drug has no horizon and sorts after drugs that do
	last := predictions[len(predictions)-1]
	assert.Equal(t, "fresh", last.DrugID)
	assert.Nil(t, last.DaysUntilStockout)
	assert.Equal(t, models.ConfidenceColdStart, last.Confidence)
}

func TestForecastBranchDeterministic(t *testing.T) {
	drugs, start, end := branchFixture()
	policy := DefaultPolicy()

	first, err := json.Marshal(ForecastBranch(drugs, start, end, 2, policy))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := json.Marshal(ForecastBranch(drugs, start, end, 2, policy))
		require.NoError(t, err)
		assert.Equal(t, first, again, "run %d produced different output", i)
	}
}

func TestForecastBranchColdStartNeverRefuses(t *testing.T) {
	drugs, start, end := branchFixture()
	policy := DefaultPolicy()

	predictions := ForecastBranch(drugs, start, end, 1, policy)
	for _, p := range predictions {
		assert.GreaterOrEqual(t, p.PredictedQuantity, 0)
		if p.Confidence == models.ConfidenceColdStart {
			assert.Greater(t, p.PredictedQuantity, 0, "cold start %s must not predict buy nothing", p.DrugID)
		}
	}
}

func TestBuildPredictionResponseCounters(t *testing.T) {
	policy := DefaultPolicy()
	now := date(2025, time.July, 1)

	predictions := []models.DrugPrediction{
		{DrugID: "a", Confidence: models.ConfidenceHigh, Trend: 0.2},
		{DrugID: "b", Confidence: models.ConfidenceColdStart},
		{DrugID: "c", Confidence: models.ConfidenceLow, Trend: 0.05},
	}

	resp := BuildPredictionResponse("b1", 2, predictions, policy, now)

	assert.Equal(t, "b1", resp.BranchID)
	assert.Equal(t, 2, resp.MonthsAhead)
	assert.Equal(t, 3, resp.TotalDrugsAnalyzed)
	assert.Equal(t, 1, resp.HighConfidencePredictions)
	assert.Equal(t, 1, resp.ColdStartItems)
	assert.Equal(t, now, resp.PredictionDate)
	// only trend 0.2 crosses the 10% signal threshold
	assert.Contains(t, resp.Summary, "1 trending up")
}
