package models

import (
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type Role struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"size:32;unique;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
