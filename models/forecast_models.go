package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// --- Forecast Result Models ---

// MonthlyUsage is one bucket of a drug's monthly usage series.
// Month is formatted YYYY-MM; months with no activity carry an explicit zero.
type MonthlyUsage struct {
	Month    string `json:"month"`
	Quantity int    `json:"quantity"`
}

// Confidence classifies how much a prediction can be trusted.
type Confidence string

const (
	ConfidenceHigh      Confidence = "HIGH"
	ConfidenceMedium    Confidence = "MEDIUM"
	ConfidenceLow       Confidence = "LOW"
	ConfidenceColdStart Confidence = "COLD_START"
)

// Method records which prediction branch produced the result.
type Method string

const (
	MethodTrendAdjusted  Method = "trend-adjusted-average"
	MethodColdStartFloor Method = "cold-start-floor"
)

// Priority orders bulk order line items by urgency.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// Rank maps a priority to its sort order, most urgent first.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// DrugPrediction is the per-drug forecast, recomputed fresh on every request.
type DrugPrediction struct {
	DrugID              string         `json:"drug_id"`
	DrugName            string         `json:"drug_name"`
	PredictedQuantity   int            `json:"predicted_quantity"`
	CurrentStock        int            `json:"current_stock"`
	AverageMonthlyUsage float64        `json:"average_monthly_usage"`
	Trend               float64        `json:"trend"`
	Confidence          Confidence     `json:"confidence"`
	Method              Method         `json:"method"`
	ReorderLevel        int            `json:"reorder_level"`
	DaysUntilStockout   *float64       `json:"days_until_stockout,omitempty"`
	HistoricalData      []MonthlyUsage `json:"historical_data,omitempty"`
	Reasoning           string         `json:"reasoning,omitempty"`
}

// PredictionResponse is the branch-wide forecast payload.
type PredictionResponse struct {
	BranchID                  string           `json:"branch_id"`
	PredictionDate            time.Time        `json:"prediction_date"`
	MonthsAhead               int              `json:"months_ahead"`
	TotalDrugsAnalyzed        int              `json:"total_drugs_analyzed"`
	HighConfidencePredictions int              `json:"high_confidence_predictions"`
	ColdStartItems            int              `json:"cold_start_items"`
	Predictions               []DrugPrediction `json:"predictions"`
	Summary                   string           `json:"summary"`
}

// BulkOrderItem is one suggested purchase line.
// TotalCost is always SuggestedQuantity x UnitPrice, recomputed, never stored.
type BulkOrderItem struct {
	DrugID            string          `json:"drug_id"`
	DrugName          string          `json:"drug_name"`
	SuggestedQuantity int             `json:"suggested_quantity"`
	CurrentStock      int             `json:"current_stock"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	Priority          Priority        `json:"priority"`
}

// BulkOrderPlan aggregates the suggested purchase lines for a branch.
// TotalEstimatedCost is the exact sum of the line item costs.
type BulkOrderPlan struct {
	BranchID           string          `json:"branch_id"`
	GeneratedAt        time.Time       `json:"generated_at"`
	MonthsAhead        int             `json:"months_ahead"`
	Items              []BulkOrderItem `json:"items"`
	TotalEstimatedCost decimal.Decimal `json:"total_estimated_cost"`
}

// RestockAdvice carries the qualitative narrative from the AI advisor.
type RestockAdvice struct {
	Summary       string   `json:"summary"`
	UrgentActions []string `json:"urgent_actions"`
	Cautions      []string `json:"cautions"`
}
