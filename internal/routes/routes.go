package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"routemaster/internal/controllers"
	"routemaster/internal/session"
)

// SetupPlannerRouter assembles the planner service surface.
func SetupPlannerRouter(planner *controllers.PlannerController, simCtrl *controllers.SimController, sess *session.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r, planner)
	BuilderRoutes(r, planner, sess)
	SavedRouteRoutes(r, planner, sess)
	SimulationRoutes(r, simCtrl, sess)

	return r
}

// SetupAdminRouter assembles the route server surface.
func SetupAdminRouter(admin *controllers.AdminController) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AdminRoutes(r, admin)

	return r
}
