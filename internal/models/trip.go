package models

import "time"

type Trip struct {
	ID            uint      `gorm:"primaryKey"`
	RouteID       uint      `gorm:"not null;index"`
	Route         Route     `gorm:"constraint:OnDelete:CASCADE"`
	TrainID       uint      `gorm:"not null;index"`
	Train         Train     `gorm:"constraint:OnDelete:CASCADE"`
	DepartureTime time.Time `gorm:"not null;index"`
	ArrivalTime   time.Time `gorm:"not null"`
	Crews         []Crew    `gorm:"many2many:trip_crews;constraint:OnDelete:CASCADE"`
	Tickets       []Ticket  `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
