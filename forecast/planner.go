package forecast

import (
	"sort"

	"github.com/shopspring/decimal"

	"app/models"
)

// PlanBulkOrder turns a branch's predictions into a prioritized, costed
// purchase order. A drug makes the plan when a shortfall is forecast
// (predicted demand exceeds current stock) or its stock has fallen to the
// reorder level. The plan's total is always the exact sum of its line costs.
func PlanBulkOrder(predictions []models.DrugPrediction, snapshots map[string]models.DrugSnapshot, policy Policy) models.BulkOrderPlan {
	items := make([]models.BulkOrderItem, 0)

	for _, p := range predictions {
		snap, ok := snapshots[p.DrugID]
		if !ok {
			continue
		}

		shortfall := p.PredictedQuantity > p.CurrentStock
		atReorderLevel := p.CurrentStock <= p.ReorderLevel
		if !shortfall && !atReorderLevel {
			continue
		}

		suggested := maxInt(p.PredictedQuantity-p.CurrentStock, p.ReorderLevel-p.CurrentStock, 0)
		if suggested == 0 {
			continue
		}

		qty := decimal.NewFromInt(int64(suggested))
		items = append(items, models.BulkOrderItem{
			DrugID:            p.DrugID,
			DrugName:          p.DrugName,
			SuggestedQuantity: suggested,
			CurrentStock:      p.CurrentStock,
			UnitPrice:         snap.UnitCost,
			TotalCost:         snap.UnitCost.Mul(qty),
			Priority:          classifyPriority(p, policy),
		})
	}

	// Deterministic ordering: priority first, then stockout proximity,
	// then drug ID as a stable tie-breaker.
	urgency := urgencyByDrug(predictions)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Priority.Rank() != items[j].Priority.Rank() {
			return items[i].Priority.Rank() < items[j].Priority.Rank()
		}
		ui, uj := urgency[items[i].DrugID], urgency[items[j].DrugID]
		if ui != uj {
			return ui < uj
		}
		return items[i].DrugID < items[j].DrugID
	})

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalCost)
	}

	return models.BulkOrderPlan{
		Items:              items,
		TotalEstimatedCost: total,
	}
}

// classifyPriority assigns the ordinal urgency tier for one line item.
func classifyPriority(p models.DrugPrediction, policy Policy) models.Priority {
	if p.CurrentStock <= 0 {
		return models.PriorityCritical
	}
	if p.DaysUntilStockout != nil && *p.DaysUntilStockout < policy.CriticalStockoutDays {
		return models.PriorityCritical
	}
	if p.CurrentStock <= p.ReorderLevel {
		return models.PriorityHigh
	}
	if p.PredictedQuantity > p.CurrentStock {
		return models.PriorityMedium
	}
	return models.PriorityLow
}

// urgencyByDrug maps each drug to its stockout horizon, with drugs lacking a
// horizon sorted after every drug that has one.
func urgencyByDrug(predictions []models.DrugPrediction) map[string]float64 {
	const noHorizon = 1e18
	urgency := make(map[string]float64, len(predictions))
	for _, p := range predictions {
		if p.DaysUntilStockout != nil {
			urgency[p.DrugID] = *p.DaysUntilStockout
		} else {
			urgency[p.DrugID] = noHorizon
		}
	}
	return urgency
}

func maxInt(values ...int) int {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
