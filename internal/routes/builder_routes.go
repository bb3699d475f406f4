package routes

import (
	"routemaster/internal/controllers"
	"routemaster/internal/middleware"
	"routemaster/internal/session"

	"github.com/gin-gonic/gin"
)

// BuilderRoutes covers the in-progress route: stop collection, pending
// details, save, and clear. Gated behind the session check.
func BuilderRoutes(r *gin.Engine, ctrl *controllers.PlannerController, sess *session.Store) {
	b := r.Group("/builder")
	b.Use(middleware.RequireLogin(sess))
	{
		b.GET("", ctrl.GetBuilder)
		b.POST("/stops", ctrl.AddStop)
		b.DELETE("/stops/:index", ctrl.DeleteStop)
		b.DELETE("/stops", ctrl.DeleteAllStops)
		b.PATCH("/stops/:index/kind", ctrl.ToggleStopKind)
		b.PUT("/details", ctrl.SetDetails)
		b.POST("/save", ctrl.SaveRoute)
		b.POST("/clear", ctrl.ClearBuilder)
	}
}
