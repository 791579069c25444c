package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"app/forecast"
	"app/middleware"
	"app/models"
	"app/store"
	"app/utils"

	"github.com/gofiber/fiber/v2"
)

// ForecastHandler serves the prediction and bulk-order endpoints. The
// repositories are injected so the forecasting core can be exercised against
// in-memory data in tests.
type ForecastHandler struct {
	History   store.HistoryRepository
	Snapshots store.SnapshotRepository
	Policy    forecast.Policy
}

func NewForecastHandler(history store.HistoryRepository, snapshots store.SnapshotRepository, policy forecast.Policy) *ForecastHandler {
	return &ForecastHandler{History: history, Snapshots: snapshots, Policy: policy}
}

// HandleGetPredictions returns per-drug demand predictions for the caller's branch.
// GET /api/v1/pharmacy/predictions?monthsAhead=N
func (h *ForecastHandler) HandleGetPredictions(c *fiber.Ctx) error {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	monthsAhead, err := h.parseMonthsAhead(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	predictions, _, now, err := h.branchForecast(c.Context(), claims.BranchID, monthsAhead)
	if err != nil {
		log.Printf("Error computing predictions for branch %s: %v", claims.BranchID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to compute predictions"})
	}

	response := forecast.BuildPredictionResponse(claims.BranchID, monthsAhead, predictions, h.Policy, now)
	return c.JSON(fiber.Map{"success": true, "data": response})
}

// HandleGetBulkOrder returns the prioritized, costed purchase order plan.
// GET /api/v1/pharmacy/bulk-order?monthsAhead=N
func (h *ForecastHandler) HandleGetBulkOrder(c *fiber.Ctx) error {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	monthsAhead, err := h.parseMonthsAhead(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	plan, err := h.bulkOrderPlan(c.Context(), claims.BranchID, monthsAhead)
	if err != nil {
		log.Printf("Error computing bulk order for branch %s: %v", claims.BranchID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to compute bulk order plan"})
	}

	return c.JSON(fiber.Map{"success": true, "data": plan})
}

// HandleExportBulkOrder renders the bulk order plan as a CSV download.
// GET /api/v1/pharmacy/bulk-order/export?monthsAhead=N
func (h *ForecastHandler) HandleExportBulkOrder(c *fiber.Ctx) error {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	monthsAhead, err := h.parseMonthsAhead(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	plan, err := h.bulkOrderPlan(c.Context(), claims.BranchID, monthsAhead)
	if err != nil {
		log.Printf("Error exporting bulk order for branch %s: %v", claims.BranchID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to export bulk order plan"})
	}

	csvData, err := utils.BulkOrderCSV(plan)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to render CSV"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="bulk-order.csv"`)
	return c.Send(csvData)
}

// parseMonthsAhead validates the horizon at the boundary; the engine never
// sees an invalid value.
func (h *ForecastHandler) parseMonthsAhead(c *fiber.Ctx) (int, error) {
	raw := c.Query("monthsAhead", "1")
	monthsAhead, err := strconv.Atoi(raw)
	if err != nil || monthsAhead < 1 || monthsAhead > h.Policy.MaxMonthsAhead {
		return 0, fiber.NewError(fiber.StatusBadRequest,
			"monthsAhead must be an integer between 1 and "+strconv.Itoa(h.Policy.MaxMonthsAhead))
	}
	return monthsAhead, nil
}

// branchForecast does the single bulk read and runs the branch-wide pipeline.
// Drugs with history but no current snapshot are skipped rather than failing
// the whole report.
func (h *ForecastHandler) branchForecast(ctx context.Context, branchID string, monthsAhead int) ([]models.DrugPrediction, map[string]models.DrugSnapshot, time.Time, error) {
	now := time.Now().UTC()
	windowEnd := now
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(h.Policy.LookbackMonths - 1), 0)

	snapshots, err := h.Snapshots.BranchSnapshots(ctx, branchID)
	if err != nil {
		return nil, nil, now, err
	}

	history, err := h.History.UsageWindow(ctx, branchID, windowStart, windowEnd)
	if err != nil {
		return nil, nil, now, err
	}

	snapByDrug := make(map[string]models.DrugSnapshot, len(snapshots))
	drugs := make([]forecast.DrugHistory, 0, len(snapshots))
	for _, snap := range snapshots {
		snapByDrug[snap.DrugID] = snap
		drugs = append(drugs, forecast.DrugHistory{
			Snapshot: snap,
			Records:  history[snap.DrugID],
		})
	}

	predictions := forecast.ForecastBranch(drugs, windowStart, windowEnd, monthsAhead, h.Policy)
	return predictions, snapByDrug, now, nil
}

func (h *ForecastHandler) bulkOrderPlan(ctx context.Context, branchID string, monthsAhead int) (models.BulkOrderPlan, error) {
	predictions, snapshots, now, err := h.branchForecast(ctx, branchID, monthsAhead)
	if err != nil {
		return models.BulkOrderPlan{}, err
	}

	plan := forecast.PlanBulkOrder(predictions, snapshots, h.Policy)
	plan.BranchID = branchID
	plan.GeneratedAt = now
	plan.MonthsAhead = monthsAhead
	return plan, nil
}
