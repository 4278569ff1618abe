package database

import "gorm.io/gorm"

// Database - фасад над gorm для групп и сообщений
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
