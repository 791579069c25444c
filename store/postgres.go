package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"app/models"
)

// PostgresHistoryRepository reads dispense history through pgx.
type PostgresHistoryRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHistoryRepository(db *pgxpool.Pool) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

var _ HistoryRepository = (*PostgresHistoryRepository)(nil)

// UsageWindow does one bulk read for the whole branch; the engine operates
// entirely in memory afterward.
func (r *PostgresHistoryRepository) UsageWindow(ctx context.Context, branchID string, windowStart, windowEnd time.Time) (map[string][]models.UsageRecord, error) {
	query := `
		SELECT drug_id, branch_id, dispensed_at, quantity
		FROM dispense_records
		WHERE branch_id = $1 AND dispensed_at >= $2 AND dispensed_at <= $3
		ORDER BY dispensed_at
	`
	rows, err := r.db.Query(ctx, query, branchID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byDrug := make(map[string][]models.UsageRecord)
	for rows.Next() {
		var rec models.UsageRecord
		if err := rows.Scan(&rec.DrugID, &rec.BranchID, &rec.DispensedAt, &rec.Quantity); err != nil {
			return nil, err
		}
		byDrug[rec.DrugID] = append(byDrug[rec.DrugID], rec)
	}

	return byDrug, rows.Err()
}

// PostgresSnapshotRepository reads current stock through pgx.
type PostgresSnapshotRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSnapshotRepository(db *pgxpool.Pool) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

var _ SnapshotRepository = (*PostgresSnapshotRepository)(nil)

func (r *PostgresSnapshotRepository) BranchSnapshots(ctx context.Context, branchID string) ([]models.DrugSnapshot, error) {
	query := `
		SELECT d.id, d.name, bs.quantity, d.unit_cost, d.reorder_level
		FROM drugs d
		JOIN branch_stock bs ON bs.drug_id = d.id
		WHERE bs.branch_id = $1 AND d.is_archived = FALSE
		ORDER BY d.id
	`
	rows, err := r.db.Query(ctx, query, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]models.DrugSnapshot, 0)
	for rows.Next() {
		var s models.DrugSnapshot
		if err := rows.Scan(&s.DrugID, &s.Name, &s.CurrentStock, &s.UnitCost, &s.ReorderLevel); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}
