package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"routemaster/internal/builder"
	"routemaster/internal/sim"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// SimController drives the route simulator against the builder's
// current stop list and serves the live position feed.
type SimController struct {
	Sim     *sim.Simulator
	Builder *builder.Builder
	Hub     *SimHub
}

// StartSimulation begins a run over the current stop list. An active
// run is superseded.
func (s *SimController) StartSimulation(c *gin.Context) {
	if err := s.Sim.Start(s.Builder.Stops()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": s.Sim.State().String()})
}

// CancelSimulation halts the active run. Safe to call at any time.
func (s *SimController) CancelSimulation(c *gin.Context) {
	s.Sim.Cancel()
	c.JSON(http.StatusOK, gin.H{"state": s.Sim.State().String()})
}

// SimulationState reports the simulator state and last position.
func (s *SimController) SimulationState(c *gin.Context) {
	resp := gin.H{"state": s.Sim.State().String()}
	if pos, ok := s.Sim.Position(); ok {
		resp["position"] = pos
	}
	c.JSON(http.StatusOK, resp)
}

// HandleSimulationSocket upgrades the connection and streams
// interpolated bus positions until the client goes away.
func (s *SimController) HandleSimulationSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection.")
		return
	}
	defer conn.Close()

	s.Hub.Register(conn)
	defer s.Hub.Unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.Info("Simulation WebSocket closed normally or abnormally.")
			} else {
				logrus.WithError(err).Error("Error reading simulation WebSocket message")
			}
			break
		}
	}
}
