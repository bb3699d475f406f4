package routes

import (
	"routemaster/internal/controllers"
	"routemaster/internal/middleware"

	"github.com/gin-gonic/gin"
)

// AdminRoutes wires the route server endpoints. Everything lives under
// the /yus prefix, matching the base URL the planner is configured with.
func AdminRoutes(r *gin.Engine, ctrl *controllers.AdminController) {
	yus := r.Group("/yus")
	{
		yus.POST("/admin-login", ctrl.AdminLogin)

		authed := yus.Group("")
		authed.Use(middleware.RequireSession())
		{
			authed.POST("/save-new-route", ctrl.SaveNewRoute)
			authed.GET("/routes", ctrl.ListSavedRoutes)
		}
	}
}
