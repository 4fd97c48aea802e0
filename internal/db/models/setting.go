// Package models contains database model definitions.
package models

import "time"

// Setting represents a named JSON blob stored in the database.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"unique;size:191"`
	Value     []byte
	UpdatedAt time.Time
}
