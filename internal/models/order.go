package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	Tickets   []Ticket  `gorm:"constraint:OnDelete:CASCADE"`
}
