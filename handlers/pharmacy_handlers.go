package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"app/database"
	"app/middleware"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// HandleListDrugs lists the drug catalog with branch stock levels.
// GET /api/v1/pharmacy/drugs?page=&pageSize=&search=
func HandleListDrugs(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))
	search := c.Query("search")

	countQuery := `
		SELECT COUNT(*)
		FROM drugs d
		JOIN branch_stock bs ON bs.drug_id = d.id
		WHERE bs.branch_id = $1 AND d.is_archived = FALSE
	`
	countArgs := []interface{}{claims.BranchID}
	if search != "" {
		countQuery += " AND d.name ILIKE $2"
		countArgs = append(countArgs, "%"+search+"%")
	}

	var totalItems int
	if err := db.QueryRow(ctx, countQuery, countArgs...).Scan(&totalItems); err != nil {
		log.Printf("Error counting drugs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to count drugs"})
	}

	pagination := utils.CreatePagination(totalItems, page, pageSize)

	query := `
		SELECT d.id, d.name, d.generic_name, d.category, d.unit, d.unit_cost,
		       d.reorder_level, d.is_archived, d.created_at, d.updated_at, bs.quantity
		FROM drugs d
		JOIN branch_stock bs ON bs.drug_id = d.id
		WHERE bs.branch_id = $1 AND d.is_archived = FALSE
	`
	args := []interface{}{claims.BranchID}
	if search != "" {
		query += " AND d.name ILIKE $2"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY d.name LIMIT " + strconv.Itoa(pagination.PageSize) +
		" OFFSET " + strconv.Itoa((pagination.CurrentPage-1)*pagination.PageSize)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing drugs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list drugs"})
	}
	defer rows.Close()

	drugs := make([]models.DrugWithStock, 0)
	for rows.Next() {
		var d models.DrugWithStock
		if err := rows.Scan(&d.ID, &d.Name, &d.GenericName, &d.Category, &d.Unit, &d.UnitCost,
			&d.ReorderLevel, &d.IsArchived, &d.CreatedAt, &d.UpdatedAt, &d.CurrentStock); err != nil {
			log.Printf("Error scanning drug row: %v", err)
			continue
		}
		drugs = append(drugs, d)
	}

	return c.JSON(fiber.Map{"success": true, "data": drugs, "pagination": pagination})
}

// HandleDispenseDrug records a dispense event and decrements branch stock.
// POST /api/v1/pharmacy/drugs/:drugId/dispense
func HandleDispenseDrug(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	drugID := c.Params("drugId")

	var req struct {
		Quantity       int     `json:"quantity"`
		PrescriptionID *string `json:"prescription_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}
	if req.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Quantity must be positive"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var newQuantity int
	updateQuery := `
		UPDATE branch_stock
		SET quantity = quantity - $1
		WHERE branch_id = $2 AND drug_id = $3 AND quantity >= $1
		RETURNING quantity
	`
	if err := tx.QueryRow(ctx, updateQuery, req.Quantity, claims.BranchID, drugID).Scan(&newQuantity); err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "Insufficient stock or drug not stocked at this branch"})
		}
		log.Printf("Error dispensing drug %s: %v", drugID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to dispense"})
	}

	ledgerQuery := `
		INSERT INTO dispense_records (drug_id, branch_id, user_id, prescription_id, quantity, dispensed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, ledgerQuery, drugID, claims.BranchID, claims.UserID, req.PrescriptionID, req.Quantity, time.Now().UTC()); err != nil {
		log.Printf("Error recording dispense for drug %s: %v", drugID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to record dispense"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to commit transaction"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"new_quantity": newQuantity}})
}

// HandleAdjustStock adjusts the stock for a drug at the caller's branch.
// POST /api/v1/pharmacy/drugs/:drugId/adjust-stock
func HandleAdjustStock(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	drugID := c.Params("drugId")

	var req struct {
		Quantity int    `json:"quantity"`
		Reason   string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to start transaction"})
	}
	defer tx.Rollback(ctx)

	var newQuantity int
	updateQuery := `
		UPDATE branch_stock
		SET quantity = quantity + $1
		WHERE branch_id = $2 AND drug_id = $3
		RETURNING quantity
	`
	if err := tx.QueryRow(ctx, updateQuery, req.Quantity, claims.BranchID, drugID).Scan(&newQuantity); err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Drug not stocked at this branch"})
		}
		log.Printf("Error adjusting stock for drug %s: %v", drugID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to adjust stock"})
	}

	logQuery := `
		INSERT INTO stock_movements (drug_id, branch_id, user_id, movement_type, quantity_changed, new_quantity, reason, movement_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.Exec(ctx, logQuery, drugID, claims.BranchID, claims.UserID, "adjustment", req.Quantity, newQuantity, req.Reason, time.Now().UTC()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to log stock movement"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to commit transaction"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"new_quantity": newQuantity}})
}

// HandleGetStockMovements retrieves the stock movement history for a drug.
// GET /api/v1/pharmacy/drugs/:drugId/movements
func HandleGetStockMovements(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	drugID := c.Params("drugId")

	query := `
		SELECT id, drug_id, branch_id, user_id, movement_type, quantity_changed, new_quantity, reason, movement_date
		FROM stock_movements
		WHERE branch_id = $1 AND drug_id = $2
		ORDER BY movement_date DESC
	`
	rows, err := db.Query(ctx, query, claims.BranchID, drugID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve stock movement history"})
	}
	defer rows.Close()

	history := make([]models.StockMovement, 0)
	for rows.Next() {
		var m models.StockMovement
		if err := rows.Scan(&m.ID, &m.DrugID, &m.BranchID, &m.UserID, &m.MovementType, &m.QuantityChanged, &m.NewQuantity, &m.Reason, &m.MovementDate); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to scan history data"})
		}
		history = append(history, m)
	}

	return c.JSON(fiber.Map{"success": true, "data": history})
}
