package store

import (
	"context"
	"time"

	"app/models"
)

// HistoryRepository reads the dispense ledger. The forecasting engine never
// touches the database itself; it receives everything through this interface
// so the core stays a pure function of its inputs.
type HistoryRepository interface {
	// UsageWindow returns every usage record for the branch inside the
	// window, grouped by drug ID.
	UsageWindow(ctx context.Context, branchID string, windowStart, windowEnd time.Time) (map[string][]models.UsageRecord, error)
}

// SnapshotRepository reads the current inventory state for a branch.
type SnapshotRepository interface {
	// BranchSnapshots returns a point-in-time stock snapshot for every
	// active drug stocked at the branch.
	BranchSnapshots(ctx context.Context, branchID string) ([]models.DrugSnapshot, error)
}
