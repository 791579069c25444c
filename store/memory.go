package store

import (
	"context"
	"time"

	"app/models"
)

// MemoryHistoryRepository provides in-memory dispense history storage,
// used in tests and local seeding.
type MemoryHistoryRepository struct {
	records []models.UsageRecord
}

// NewMemoryHistoryRepository creates a new in-memory history repository.
func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{records: []models.UsageRecord{}}
}

// Verify interface compliance
var _ HistoryRepository = (*MemoryHistoryRepository)(nil)

// AddRecord appends a usage record to the ledger.
func (r *MemoryHistoryRepository) AddRecord(rec models.UsageRecord) {
	r.records = append(r.records, rec)
}

// LoadRecords loads a batch of usage records into the ledger.
func (r *MemoryHistoryRepository) LoadRecords(records []models.UsageRecord) {
	r.records = append(r.records, records...)
}

// UsageWindow returns the branch's records inside the window, grouped by drug.
func (r *MemoryHistoryRepository) UsageWindow(_ context.Context, branchID string, windowStart, windowEnd time.Time) (map[string][]models.UsageRecord, error) {
	byDrug := make(map[string][]models.UsageRecord)
	for _, rec := range r.records {
		if rec.BranchID != branchID {
			continue
		}
		if rec.DispensedAt.Before(windowStart) || rec.DispensedAt.After(windowEnd) {
			continue
		}
		byDrug[rec.DrugID] = append(byDrug[rec.DrugID], rec)
	}
	return byDrug, nil
}

// MemorySnapshotRepository provides in-memory stock snapshot storage.
type MemorySnapshotRepository struct {
	snapshots map[string][]models.DrugSnapshot
}

// NewMemorySnapshotRepository creates a new in-memory snapshot repository.
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{snapshots: make(map[string][]models.DrugSnapshot)}
}

// Verify interface compliance
var _ SnapshotRepository = (*MemorySnapshotRepository)(nil)

// SetSnapshot stores the current stock view for a drug at a branch.
func (r *MemorySnapshotRepository) SetSnapshot(branchID string, snap models.DrugSnapshot) {
	r.snapshots[branchID] = append(r.snapshots[branchID], snap)
}

// BranchSnapshots returns the stock snapshots for every drug at the branch.
func (r *MemorySnapshotRepository) BranchSnapshots(_ context.Context, branchID string) ([]models.DrugSnapshot, error) {
	snaps := make([]models.DrugSnapshot, len(r.snapshots[branchID]))
	copy(snaps, r.snapshots[branchID])
	return snaps, nil
}
