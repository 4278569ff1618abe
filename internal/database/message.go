package database

import (
	"group-chat-backend/internal/models"

	"github.com/google/uuid"
)

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

// GetRecentMessages получает последние limit сообщений группы
// в порядке возрастания времени
func (d *Database) GetRecentMessages(groupID uuid.UUID, limit int) ([]models.Message, error) {
	var messages []models.Message

	err := d.db.
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	// Разворачиваем порядок, чтобы старые сообщения были первыми
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (d *Database) CountMessages() (int64, error) {
	var count int64
	err := d.db.Model(&models.Message{}).Count(&count).Error
	return count, err
}

func (d *Database) CountGroupMessages(groupID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.Model(&models.Message{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}
