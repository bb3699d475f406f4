package routes

import (
	"routemaster/internal/controllers"
	"routemaster/internal/middleware"
	"routemaster/internal/session"

	"github.com/gin-gonic/gin"
)

// SimulationRoutes covers the simulation controls plus the WebSocket
// position feed.
func SimulationRoutes(r *gin.Engine, ctrl *controllers.SimController, sess *session.Store) {
	simGroup := r.Group("/simulation")
	simGroup.Use(middleware.RequireLogin(sess))
	{
		simGroup.POST("/start", ctrl.StartSimulation)
		simGroup.POST("/cancel", ctrl.CancelSimulation)
		simGroup.GET("", ctrl.SimulationState)
	}

	wsRoutes := r.Group("/ws")
	wsRoutes.Use(middleware.RequireLogin(sess))
	{
		wsRoutes.GET("/simulation", ctrl.HandleSimulationSocket)
	}
}
