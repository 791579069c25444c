package models

// DrugDispenseSummary is one row of the "top dispensed" dashboard widget.
type DrugDispenseSummary struct {
	DrugID            string `json:"drug_id"`
	DrugName          string `json:"drug_name"`
	QuantityDispensed int    `json:"quantity_dispensed"`
}

// BranchDashboardSummary holds the headline numbers for a branch pharmacy.
type BranchDashboardSummary struct {
	BranchID          string                `json:"branch_id"`
	TotalDrugs        int                   `json:"total_drugs"`
	LowStockDrugs     int                   `json:"low_stock_drugs"`
	OutOfStockDrugs   int                   `json:"out_of_stock_drugs"`
	TopDispensedDrugs []DrugDispenseSummary `json:"top_dispensed_drugs"`
}
