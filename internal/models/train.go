package models

import "time"

// Train is a rolling stock unit with CargoNum cars of PlacesInCargo seats each.
// No two trains share the same (CargoNum, PlacesInCargo) layout.
type Train struct {
	ID            uint      `gorm:"primaryKey"`
	Name          string    `gorm:"size:255;unique;not null"`
	CargoNum      int       `gorm:"not null;uniqueIndex:idx_trains_layout"`
	PlacesInCargo int       `gorm:"not null;uniqueIndex:idx_trains_layout"`
	TrainTypeID   uint      `gorm:"not null;index"`
	TrainType     TrainType `gorm:"constraint:OnDelete:CASCADE"`
	ImagePath     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Capacity is the number of sellable seats on the train.
func (t *Train) Capacity() int {
	return t.CargoNum * t.PlacesInCargo
}
