package routes

import (
	"routemaster/internal/controllers"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine, ctrl *controllers.PlannerController) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", ctrl.Login)
		auth.POST("/logout", ctrl.Logout)
		auth.GET("/session", ctrl.SessionStatus)
	}
}
