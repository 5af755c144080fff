package models

import (
	"fmt"
	"time"

	"github.com/Andrey1104/train-station-api-service/internal/geo"
)

type Route struct {
	ID            uint    `gorm:"primaryKey"`
	SourceID      uint    `gorm:"not null;index"`
	Source        Station `gorm:"constraint:OnDelete:CASCADE"`
	DestinationID uint    `gorm:"not null;index"`
	Destination   Station `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Distance is recomputed from the current station coordinates on every call.
// Source and Destination must be loaded.
func (r *Route) Distance() int {
	return geo.DistanceKm(
		r.Source.Latitude, r.Source.Longitude,
		r.Destination.Latitude, r.Destination.Longitude,
	)
}

func (r *Route) String() string {
	return fmt.Sprintf("%s - %s", r.Source.Name, r.Destination.Name)
}
