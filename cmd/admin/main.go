package main

import (
	"log"
	"net/http"

	"routemaster/internal/config"
	"routemaster/internal/controllers"
	"routemaster/internal/logger"
	"routemaster/internal/middleware"
	"routemaster/internal/routes"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	logger.Setup(cfg.LogFile)

	// Connect to the database
	db := config.InitDB(cfg.DB)

	admin := &controllers.AdminController{DB: db}
	if err := admin.SeedAdminUser(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("could not seed admin user: %v", err)
	}

	// Setup Gin router
	r := routes.SetupAdminRouter(admin)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Printf("🚀 Route server running at %s", cfg.AdminAddr)
	log.Fatal(http.ListenAndServe(cfg.AdminAddr, handler))
}
