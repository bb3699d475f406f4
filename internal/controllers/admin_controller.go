package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"routemaster/internal/middleware"
	"routemaster/internal/models"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// AdminController implements the route server's endpoints: session
// issuance on admin-login and route intake on save-new-route.
type AdminController struct {
	DB *gorm.DB
}

// SeedAdminUser ensures the configured admin credential exists. Called
// once at startup; an already seeded email is not an error.
func (a *AdminController) SeedAdminUser(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.AdminUser{Email: email, Password: string(hash)}
	if err := a.DB.Create(&user).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			logrus.WithField("email", email).Debug("Admin user already seeded")
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	logrus.WithField("email", email).Info("Seeded admin user")
	return nil
}

type adminLoginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// AdminLogin verifies the form-encoded credential and issues a session
// id. The response shape is the wire contract the planner consumes:
// login_status "valid" plus session_id, or "invalid" plus a message.
func (a *AdminController) AdminLogin(c *gin.Context) {
	var body adminLoginInput
	if err := c.ShouldBind(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"login_status": "invalid", "message": err.Error()})
		return
	}

	var user models.AdminUser
	if err := a.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"login_status": "invalid", "message": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"login_status": "invalid", "message": "database error: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"login_status": "invalid", "message": "incorrect password"})
		return
	}

	sessionID, err := middleware.GenerateSessionToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"login_status": "invalid", "message": "could not generate session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"login_status": "valid", "session_id": sessionID})
}

// SaveNewRoute accepts one submitted route record, validates the wire
// contract, and stores the route with its stops and a LINESTRING built
// from their coordinates, all in one transaction.
func (a *AdminController) SaveNewRoute(c *gin.Context) {
	var payload models.RoutePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		logrus.WithError(err).Warn("SaveNewRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	record, err := payload.Record()
	if err != nil {
		respondError(c, err)
		return
	}

	wkbGeom, err := lineStringFromStops(record.Stops)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}

	tx := a.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	route := models.SavedRoute{
		UpRouteName:       record.UpRouteName,
		DownRouteName:     record.DownRouteName,
		Src:               record.Src,
		Dest:              record.Dest,
		DownDepartureTime: record.DownDepartureTime,
		Geometry:          wkbGeom,
	}
	if err := tx.Create(&route).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create route failed: " + err.Error()})
		return
	}

	for _, s := range record.Stops {
		stop := models.SavedStop{
			Seq:          s.Sequence,
			LocationName: s.LocationName,
			Lat:          s.Lat,
			Lng:          s.Lng,
			IsStop:       s.IsStop,
			ArrivalTime:  s.ArrivalTime,
			RouteID:      route.ID,
		}
		if err := tx.Create(&stop).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Create stop failed: " + err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit failed: " + err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{
		"route_id": route.ID,
		"src":      route.Src,
		"dest":     route.Dest,
		"stops":    len(record.Stops),
	}).Info("Stored submitted route")

	c.JSON(http.StatusCreated, gin.H{"status": "ok", "route_id": route.ID})
}

// savedRouteResponse mirrors models.SavedRoute with Geometry as a
// GeoJSON string for API output.
type savedRouteResponse struct {
	ID                uint               `json:"ID"`
	UpRouteName       string             `json:"up_route_name"`
	DownRouteName     string             `json:"down_route_name"`
	Src               string             `json:"src"`
	Dest              string             `json:"dest"`
	DownDepartureTime string             `json:"down_departure_time"`
	Geometry          string             `json:"geometry"`
	Stops             []models.SavedStop `json:"stops"`
}

func toSavedRouteResponse(route models.SavedRoute) savedRouteResponse {
	jsonGeom, _ := convertWKBToGeoJSON(route.Geometry)
	return savedRouteResponse{
		ID:                route.ID,
		UpRouteName:       route.UpRouteName,
		DownRouteName:     route.DownRouteName,
		Src:               route.Src,
		Dest:              route.Dest,
		DownDepartureTime: route.DownDepartureTime,
		Geometry:          jsonGeom,
		Stops:             route.Stops,
	}
}

// ListSavedRoutes returns every submitted route with stops and geometry.
func (a *AdminController) ListSavedRoutes(c *gin.Context) {
	var routes []models.SavedRoute
	if err := a.DB.Preload("Stops").Find(&routes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing routes: " + err.Error()})
		return
	}

	var responses []savedRouteResponse
	for _, r := range routes {
		responses = append(responses, toSavedRouteResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"routes": responses})
}

// lineStringFromStops builds WKB LINESTRING bytes from the stop
// coordinates, in stop order.
func lineStringFromStops(stops []models.Stop) ([]byte, error) {
	coords := make([]geom.Coord, 0, len(stops))
	for _, s := range stops {
		coords = append(coords, geom.Coord{s.Lng, s.Lat})
	}
	ls, err := geom.NewLineString(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(ls, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
