package routes

import (
	"routemaster/internal/controllers"
	"routemaster/internal/middleware"
	"routemaster/internal/session"

	"github.com/gin-gonic/gin"
)

// SavedRouteRoutes covers the saved-routes screen: list, delete one,
// clear all.
func SavedRouteRoutes(r *gin.Engine, ctrl *controllers.PlannerController, sess *session.Store) {
	saved := r.Group("/routes")
	saved.Use(middleware.RequireLogin(sess))
	{
		saved.GET("", ctrl.ListRoutes)
		saved.DELETE("/:id", ctrl.DeleteRoute)
		saved.DELETE("", ctrl.DeleteAllRoutes)
	}
}
