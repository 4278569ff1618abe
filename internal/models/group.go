package models

import (
	"github.com/google/uuid"
	"time"
)

type Group struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedBy    string    `gorm:"default:'admin'"`
	IsActive     bool      `gorm:"default:true;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Связи
	Messages []Message `gorm:"foreignKey:GroupID"`
}
