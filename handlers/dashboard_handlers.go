package handlers

import (
	"context"
	"log"

	"app/database"
	"app/middleware"
	"app/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGetBranchDashboardSummary fetches summary data for the branch pharmacy dashboard.
// GET /api/v1/pharmacy/dashboard/summary
func HandleGetBranchDashboardSummary(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}
	branchID := claims.BranchID

	var summary models.BranchDashboardSummary
	summary.BranchID = branchID

	// 1. Total drugs stocked
	queryTotal := `
		SELECT COUNT(*)
		FROM branch_stock bs
		JOIN drugs d ON d.id = bs.drug_id
		WHERE bs.branch_id = $1 AND d.is_archived = FALSE
	`
	if err := db.QueryRow(ctx, queryTotal, branchID).Scan(&summary.TotalDrugs); err != nil {
		log.Printf("Error fetching total drugs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch total drugs"})
	}

	// 2. Low stock and out of stock counts
	queryLow := `
		SELECT
			COUNT(*) FILTER (WHERE bs.quantity <= d.reorder_level AND bs.quantity > 0),
			COUNT(*) FILTER (WHERE bs.quantity <= 0)
		FROM branch_stock bs
		JOIN drugs d ON d.id = bs.drug_id
		WHERE bs.branch_id = $1 AND d.is_archived = FALSE
	`
	if err := db.QueryRow(ctx, queryLow, branchID).Scan(&summary.LowStockDrugs, &summary.OutOfStockDrugs); err != nil {
		log.Printf("Error fetching stock level counts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch stock level counts"})
	}

	// 3. Top dispensed drugs over the last 30 days
	queryTop := `
		SELECT d.id, d.name, COALESCE(SUM(dr.quantity), 0) AS dispensed
		FROM dispense_records dr
		JOIN drugs d ON d.id = dr.drug_id
		WHERE dr.branch_id = $1 AND dr.dispensed_at >= NOW() - INTERVAL '30 days'
		GROUP BY d.id, d.name
		ORDER BY dispensed DESC, d.id
		LIMIT 5
	`
	rows, err := db.Query(ctx, queryTop, branchID)
	if err != nil {
		log.Printf("Error fetching top dispensed drugs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch top dispensed drugs"})
	}
	defer rows.Close()

	top := []models.DrugDispenseSummary{}
	for rows.Next() {
		var d models.DrugDispenseSummary
		if err := rows.Scan(&d.DrugID, &d.DrugName, &d.QuantityDispensed); err != nil {
			log.Printf("Error scanning top dispensed row: %v", err)
			continue
		}
		top = append(top, d)
	}
	summary.TopDispensedDrugs = top

	return c.JSON(fiber.Map{"success": true, "data": summary})
}
