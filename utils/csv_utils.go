package utils

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"app/models"
)

// bulkOrderHeader is the user-facing export contract; the column set and
// order must stay stable.
var bulkOrderHeader = []string{"Drug Name", "Suggested Quantity", "Current Stock", "Unit Price", "Total Cost", "Priority"}

// BulkOrderCSV renders a bulk order plan as CSV, one row per line item,
// header first.
func BulkOrderCSV(plan models.BulkOrderPlan) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(bulkOrderHeader); err != nil {
		return nil, err
	}

	for _, item := range plan.Items {
		row := []string{
			item.DrugName,
			strconv.Itoa(item.SuggestedQuantity),
			strconv.Itoa(item.CurrentStock),
			item.UnitPrice.StringFixed(2),
			item.TotalCost.StringFixed(2),
			string(item.Priority),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
