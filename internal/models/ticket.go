package models

// Ticket reserves one seat in one cargo of a trip. The
// (TripID, Cargo, Seat) triple is unique, so a seat can be sold once.
type Ticket struct {
	ID      uint  `gorm:"primaryKey"`
	TripID  uint  `gorm:"not null;uniqueIndex:idx_tickets_seat,priority:1"`
	Trip    Trip  `gorm:"constraint:OnDelete:CASCADE"`
	Cargo   int   `gorm:"not null;uniqueIndex:idx_tickets_seat,priority:2"`
	Seat    int   `gorm:"not null;uniqueIndex:idx_tickets_seat,priority:3"`
	OrderID uint  `gorm:"not null;index"`
	Order   Order `gorm:"constraint:OnDelete:CASCADE"`
}
