package database

import (
	"group-chat-backend/internal/models"
	"gorm.io/gorm"
)

func (d *Database) CreateGroup(group *models.Group) error {
	return d.db.Create(group).Error
}

func (d *Database) GetGroupByName(name string) (*models.Group, error) {
	var group models.Group
	if err := d.db.Where("name = ?", name).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// GetActiveGroupByName ищет активную группу для аутентификации при входе
func (d *Database) GetActiveGroupByName(name string) (*models.Group, error) {
	var group models.Group
	if err := d.db.Where("name = ? AND is_active = ?", name, true).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (d *Database) UpdateGroup(group *models.Group) error {
	return d.db.Save(group).Error
}

// DeleteGroup удаляет группу вместе со всеми её сообщениями
func (d *Database) DeleteGroup(name string) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.Where("name = ?", name).First(&group).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Message{}, "group_id = ?", group.ID).Error; err != nil {
			return err
		}

		return tx.Delete(&group).Error
	})
}

func (d *Database) GetActiveGroups() ([]models.Group, error) {
	var groups []models.Group
	err := d.db.
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&groups).Error
	return groups, err
}

func (d *Database) GetRecentGroups(limit int) ([]models.Group, error) {
	var groups []models.Group
	err := d.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&groups).Error
	return groups, err
}

func (d *Database) CountGroups() (int64, error) {
	var count int64
	err := d.db.Model(&models.Group{}).Count(&count).Error
	return count, err
}
