package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// --- Core Models ---

// Branch represents a single clinic location running its own pharmacy.
type Branch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Drug represents a drug in the master catalog.
type Drug struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	GenericName  *string         `json:"generic_name,omitempty"`
	Category     *string         `json:"category,omitempty"`
	Unit         *string         `json:"unit,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReorderLevel int             `json:"reorder_level"`
	IsArchived   bool            `json:"is_archived"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DrugWithStock extends Drug with branch-specific stock quantity.
type DrugWithStock struct {
	Drug
	CurrentStock int `json:"current_stock"`
}

// DrugSnapshot is the read-only point-in-time inventory view a forecast runs
// against: what the drug is, how much is on the shelf, and what it costs.
type DrugSnapshot struct {
	DrugID       string          `json:"drug_id"`
	Name         string          `json:"name"`
	CurrentStock int             `json:"current_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReorderLevel int             `json:"reorder_level"`
}

// UsageRecord is one dispensed unit event from the transaction ledger.
// Quantity is signed: dispenses are positive, returns negative.
type UsageRecord struct {
	DrugID      string    `json:"drug_id"`
	BranchID    string    `json:"branch_id"`
	DispensedAt time.Time `json:"dispensed_at"`
	Quantity    int       `json:"quantity"`
}

// StockMovement logs a manual change in stock quantity (receipt, correction).
type StockMovement struct {
	ID              string    `json:"id"`
	DrugID          string    `json:"drug_id"`
	BranchID        string    `json:"branch_id"`
	UserID          string    `json:"user_id"`
	MovementType    string    `json:"movement_type"`
	QuantityChanged int       `json:"quantity_changed"`
	NewQuantity     int       `json:"new_quantity"`
	Reason          *string   `json:"reason,omitempty"`
	MovementDate    time.Time `json:"movement_date"`
}
