package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"routemaster/internal/builder"
	apperrors "routemaster/internal/pkg/errors"
	"routemaster/internal/session"
	"routemaster/internal/store"
	"routemaster/internal/syncclient"
)

// PlannerController exposes the route-building workflow: every UI
// event of the planner app (map tap, locate-me, form edit, save,
// clear, saved-routes management) maps to one handler here.
type PlannerController struct {
	Builder *builder.Builder
	Store   *store.Store
	Session *session.Store
	Sync    *syncclient.Client
}

// respondError maps an application error onto its HTTP status.
func respondError(c *gin.Context, err error) {
	var ae *apperrors.AppError
	if errors.As(err, &ae) {
		c.JSON(apperrors.StatusFor(ae), gin.H{"error": ae.Message, "code": ae.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login obtains a session from the route server and stores it.
func (p *PlannerController) Login(c *gin.Context) {
	var body loginInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := p.Sync.Login(c.Request.Context(), body.Email, body.Password); err != nil {
		logrus.WithError(err).Warn("Login failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_in": true})
}

// Logout destroys the local session.
func (p *PlannerController) Logout(c *gin.Context) {
	if err := p.Session.Clear(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_in": false})
}

// SessionStatus backs the login gate checked at app start.
func (p *PlannerController) SessionStatus(c *gin.Context) {
	_, ok := p.Session.Token()
	c.JSON(http.StatusOK, gin.H{"logged_in": ok})
}

// GetBuilder returns the in-progress stop list and pending details.
func (p *PlannerController) GetBuilder(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stops":   p.Builder.Stops(),
		"details": p.Builder.Details(),
	})
}

type addStopInput struct {
	LocationName string  `json:"location_name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	ArrivalTime  string  `json:"arrival_time"`
}

// AddStop appends a stop. Map taps and locate-me both post here; the
// coordinate source makes no difference to validation.
func (p *PlannerController) AddStop(c *gin.Context) {
	var input addStopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	stop, err := p.Builder.AddStop(input.Lat, input.Lon, input.LocationName, input.ArrivalTime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stop": stop})
}

func stopIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop index"})
		return 0, false
	}
	return idx, true
}

// DeleteStop removes one stop; the remaining stops are renumbered.
func (p *PlannerController) DeleteStop(c *gin.Context) {
	idx, ok := stopIndex(c)
	if !ok {
		return
	}
	if err := p.Builder.DeleteStop(idx); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stops": p.Builder.Stops()})
}

// DeleteAllStops clears the stop list and stops any running simulation.
func (p *PlannerController) DeleteAllStops(c *gin.Context) {
	p.Builder.DeleteAllStops()
	c.JSON(http.StatusOK, gin.H{"stops": p.Builder.Stops()})
}

// ToggleStopKind flips a stop between boarding point and pass-through.
func (p *PlannerController) ToggleStopKind(c *gin.Context) {
	idx, ok := stopIndex(c)
	if !ok {
		return
	}
	if err := p.Builder.ToggleStopKind(idx); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stops": p.Builder.Stops()})
}

// SetDetails updates the pending route names and down departure time.
func (p *PlannerController) SetDetails(c *gin.Context) {
	var details builder.Details
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	p.Builder.SetDetails(details)
	c.JSON(http.StatusOK, gin.H{"details": p.Builder.Details()})
}

// SaveRoute finalizes the route: local save first, then best-effort
// sync. A failed sync comes back as a warning on a successful save.
func (p *PlannerController) SaveRoute(c *gin.Context) {
	result, err := p.Builder.Save(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"route": result.Record, "synced": result.Synced}
	if result.SyncErr != nil {
		resp["sync_warning"] = "Route saved locally but could not sync with server: " + result.SyncErr.Error()
	}
	c.JSON(http.StatusCreated, resp)
}

// ClearBuilder abandons the in-progress route.
func (p *PlannerController) ClearBuilder(c *gin.Context) {
	p.Builder.Clear()
	c.JSON(http.StatusOK, gin.H{"stops": p.Builder.Stops()})
}

// ListRoutes returns every locally saved route in insertion order.
func (p *PlannerController) ListRoutes(c *gin.Context) {
	routes, err := p.Store.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// DeleteRoute removes one saved route. Unknown ids are a no-op.
func (p *PlannerController) DeleteRoute(c *gin.Context) {
	if err := p.Store.DeleteOne(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted"})
}

// DeleteAllRoutes empties the saved-routes collection.
func (p *PlannerController) DeleteAllRoutes(c *gin.Context) {
	if err := p.Store.DeleteAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All routes deleted"})
}
