package routes

import (
	"app/config"
	"app/database"
	"app/handlers"
	"app/middleware"
	"app/store"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", handlers.HandleLogin)

	// --- Pharmacy Routes ---
	pharmacy := api.Group("/pharmacy", middleware.JWTMiddleware)

	// Catalog & stock
	pharmacy.Get("/drugs", handlers.HandleListDrugs)
	pharmacy.Post("/drugs/:drugId/dispense", handlers.HandleDispenseDrug)
	pharmacy.Post("/drugs/:drugId/adjust-stock", middleware.CheckRole("manager", "pharmacist"), handlers.HandleAdjustStock)
	pharmacy.Get("/drugs/:drugId/movements", handlers.HandleGetStockMovements)

	// Dashboard
	pharmacy.Get("/dashboard/summary", handlers.HandleGetBranchDashboardSummary)

	// Forecasting & ordering
	db := database.GetDB()
	forecastHandler := handlers.NewForecastHandler(
		store.NewPostgresHistoryRepository(db),
		store.NewPostgresSnapshotRepository(db),
		config.AppConfig.Forecast,
	)
	pharmacy.Get("/predictions", forecastHandler.HandleGetPredictions)
	pharmacy.Get("/bulk-order", forecastHandler.HandleGetBulkOrder)
	pharmacy.Get("/bulk-order/export", forecastHandler.HandleExportBulkOrder)
	pharmacy.Get("/bulk-order/advice", forecastHandler.HandleGetRestockAdvice)
}
