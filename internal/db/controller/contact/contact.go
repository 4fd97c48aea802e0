// Package contact stores contact form submissions.
package contact

import (
	"errors"

	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Create stores a message. CreatedAt is filled in by gorm.
func Create(db *gorm.DB, msg *models.ContactMessage) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(msg).Error
}

// List returns all messages, oldest first.
func List(db *gorm.DB) ([]models.ContactMessage, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	messages := []models.ContactMessage{}
	if err := db.Order("created_at, id").Find(&messages).Error; err != nil {
		return nil, err
	}

	return messages, nil
}
