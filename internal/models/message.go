package models

import (
	"github.com/google/uuid"
	"time"
)

type Message struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID  uuid.UUID `gorm:"not null;index:idx_messages_group_time"`
	Username string    `gorm:"not null"`
	Body     string    `gorm:"not null;size:500"`
	// Выставляется сервером при сохранении, никогда клиентом
	CreatedAt time.Time `gorm:"index:idx_messages_group_time"`

	// Связи
	Group Group `gorm:"foreignKey:GroupID"`
}
