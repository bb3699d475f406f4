package main

import (
	"log"
	"net/http"
	"path/filepath"

	"routemaster/internal/builder"
	"routemaster/internal/config"
	"routemaster/internal/controllers"
	"routemaster/internal/logger"
	"routemaster/internal/middleware"
	"routemaster/internal/routes"
	"routemaster/internal/session"
	"routemaster/internal/sim"
	"routemaster/internal/store"
	"routemaster/internal/syncclient"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	logger.Setup(cfg.LogFile)

	// Local state: saved routes and the session token
	sess, err := session.NewStore(filepath.Join(cfg.DataDir, "session.token"))
	if err != nil {
		log.Fatalf("could not open session store: %v", err)
	}
	routeStore := store.New(filepath.Join(cfg.DataDir, "routes.json"))

	// Remote sync under the stored session
	syncClient := syncclient.New(cfg.SyncBaseURL, cfg.SyncTimeout, sess)

	// Simulation feed: simulator -> hub -> websocket clients
	hub := controllers.NewSimHub()
	simulator := sim.New(hub.Publish)

	routeBuilder := builder.New(routeStore, syncClient, simulator)

	planner := &controllers.PlannerController{
		Builder: routeBuilder,
		Store:   routeStore,
		Session: sess,
		Sync:    syncClient,
	}
	simCtrl := &controllers.SimController{
		Sim:     simulator,
		Builder: routeBuilder,
		Hub:     hub,
	}

	// Setup Gin router
	r := routes.SetupPlannerRouter(planner, simCtrl, sess)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Printf("🚌 Planner running at %s", cfg.PlannerAddr)
	log.Fatal(http.ListenAndServe(cfg.PlannerAddr, handler))
}
