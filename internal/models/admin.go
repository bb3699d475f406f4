package models

import (
	"gorm.io/gorm"
)

// AdminUser is the credential record the admin service checks on login.
type AdminUser struct {
	gorm.Model
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-"`
}

// SavedRoute is a route record accepted by the save-new-route endpoint.
// Geometry holds the WKB LINESTRING built from the submitted stops.
type SavedRoute struct {
	gorm.Model

	UpRouteName       string `json:"up_route_name" binding:"required"`
	DownRouteName     string `json:"down_route_name" binding:"required"`
	Src               string `json:"src"`
	Dest              string `json:"dest"`
	DownDepartureTime string `json:"down_departure_time"`

	Geometry []byte `gorm:"type:bytea" json:"-"`

	Stops []SavedStop `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"stops,omitempty"`
}

// SavedStop mirrors one stop of a submitted route.
type SavedStop struct {
	gorm.Model

	Seq          int     `json:"stop_sequence"`
	LocationName string  `json:"location_name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lon"`
	IsStop       bool    `json:"is_stop"`
	ArrivalTime  string  `json:"arrival_time"`

	RouteID uint `json:"route_id"`
}
