package forecast

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/models"
)

func days(v float64) *float64 { return &v }

func plannerSnapshot(drugID string, stock int, unitCost int64, reorderLevel int) models.DrugSnapshot {
	return models.DrugSnapshot{
		DrugID:       drugID,
		Name:         "Drug " + drugID,
		CurrentStock: stock,
		UnitCost:     decimal.NewFromInt(unitCost),
		ReorderLevel: reorderLevel,
	}
}

func plannerPrediction(drugID string, predicted, stock, reorderLevel int, horizon *float64) models.DrugPrediction {
	return models.DrugPrediction{
		DrugID:            drugID,
		DrugName:          "Drug " + drugID,
		PredictedQuantity: predicted,
		CurrentStock:      stock,
		ReorderLevel:      reorderLevel,
		DaysUntilStockout: horizon,
	}
}

func TestPlanBulkOrderShortfallScenario(t *testing.T) {
	policy := DefaultPolicy()
	preds := []models.DrugPrediction{
		plannerPrediction("d1", 121, 50, 80, days(13.6)),
	}
	snaps := map[string]models.DrugSnapshot{
		"d1": plannerSnapshot("d1", 50, 5, 80),
	}

	plan := PlanBulkOrder(preds, snaps, policy)
	require.Len(t, plan.Items, 1)

	item := plan.Items[0]
	assert.Equal(t, 71, item.SuggestedQuantity) // max(121-50, 80-50, 0)
	assert.Equal(t, "355.00", item.TotalCost.StringFixed(2))
	assert.Equal(t, models.PriorityCritical, item.Priority) // 13.6 days < 15
	assert.True(t, plan.TotalEstimatedCost.Equal(item.TotalCost))
}

func TestPlanBulkOrderZeroStockIsAlwaysCritical(t *testing.T) {
	policy := DefaultPolicy()
	preds := []models.DrugPrediction{
		plannerPrediction("d1", 5, 0, 0, nil),
	}
	snaps := map[string]models.DrugSnapshot{
		"d1": plannerSnapshot("d1", 0, 2, 0),
	}

	plan := PlanBulkOrder(preds, snaps, policy)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, models.PriorityCritical, plan.Items[0].Priority)
}

func TestPlanBulkOrderPriorityTiers(t *testing.T) {
	policy := DefaultPolicy()
	preds := []models.DrugPrediction{
		// HIGH: stock below reorder level, horizon comfortable
		plannerPrediction("dHigh", 10, 20, 25, days(40)),
		// MEDIUM: shortfall forecast but stock above reorder level
		plannerPrediction("dMedium", 60, 40, 10, days(90)),
		// CRITICAL: stockout imminent
		plannerPrediction("dCritical", 30, 5, 10, days(3)),
	}
	snaps := map[string]models.DrugSnapshot{
		"dHigh":     plannerSnapshot("dHigh", 20, 1, 25),
		"dMedium":   plannerSnapshot("dMedium", 40, 1, 10),
		"dCritical": plannerSnapshot("dCritical", 5, 1, 10),
	}

	plan := PlanBulkOrder(preds, snaps, policy)
	require.Len(t, plan.Items, 3)

	// sorted most urgent first
	assert.Equal(t, "dCritical", plan.Items[0].DrugID)
	assert.Equal(t, models.PriorityCritical, plan.Items[0].Priority)
	assert.Equal(t, "dHigh", plan.Items[1].DrugID)
	assert.Equal(t, models.PriorityHigh, plan.Items[1].Priority)
	assert.Equal(t, "dMedium", plan.Items[2].DrugID)
	assert.Equal(t, models.PriorityMedium, plan.Items[2].Priority)
}

func TestPlanBulkOrderSkipsWellStockedDrugs(t *testing.T) {
	policy := DefaultPolicy()
	preds := []models.DrugPrediction{
		plannerPrediction("d1", 50, 200, 30, days(120)),
	}
	snaps := map[string]models.DrugSnapshot{
		"d1": plannerSnapshot("d1", 200, 3, 30),
	}

	plan := PlanBulkOrder(preds, snaps, policy)
	assert.Empty(t, plan.Items)
	assert.True(t, plan.TotalEstimatedCost.IsZero())
}

func TestPlanBulkOrderTotalIsExactSum(t *testing.T) {
	policy := DefaultPolicy()

	// fractional unit prices that would drift under float addition
	snaps := map[string]models.DrugSnapshot{}
	var preds []models.DrugPrediction
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		snap := models.DrugSnapshot{
			DrugID:       id,
			Name:         "Drug " + id,
			CurrentStock: 0,
			UnitCost:     decimal.RequireFromString("0.1"),
			ReorderLevel: 7,
		}
		snaps[id] = snap
		preds = append(preds, plannerPrediction(id, 13, 0, 7, nil))
	}

	plan := PlanBulkOrder(preds, snaps, policy)
	require.Len(t, plan.Items, 5)

	sum := decimal.Zero
	for _, item := range plan.Items {
		expected := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.SuggestedQuantity)))
		assert.True(t, item.TotalCost.Equal(expected))
		sum = sum.Add(item.TotalCost)
	}
	assert.True(t, plan.TotalEstimatedCost.Equal(sum))
	assert.Equal(t, "6.50", plan.TotalEstimatedCost.StringFixed(2)) // 5 x 13 x 0.1
}

func TestPlanBulkOrderSkipsDrugsWithoutSnapshot(t *testing.T) {
	policy := DefaultPolicy()
	preds := []models.DrugPrediction{
		plannerPrediction("ghost", 50, 0, 10, nil),
	}

	plan := PlanBulkOrder(preds, map[string]models.DrugSnapshot{}, policy)
	assert.Empty(t, plan.Items)
}

func TestPlanBulkOrderZeroCostDrugIsValid(t *testing.T) {
	policy := DefaultPolicy()
	preds := []models.DrugPrediction{
		plannerPrediction("free", 30, 0, 10, nil),
	}
	snaps := map[string]models.DrugSnapshot{
		"free": plannerSnapshot("free", 0, 0, 10),
	}

	plan := PlanBulkOrder(preds, snaps, policy)
	require.Len(t, plan.Items, 1)
	assert.True(t, plan.Items[0].TotalCost.IsZero())
}
