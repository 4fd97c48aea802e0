package models

import "time"

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID        uint64    `gorm:"primaryKey"          json:"-"`
	Name      string    `gorm:"size:200;not null"   json:"name"`
	Email     string    `gorm:"size:255;not null"   json:"email"`
	Subject   string    `gorm:"size:255;not null"   json:"subject"`
	Message   string    `gorm:"type:text;not null"  json:"message"`
	CreatedAt time.Time `gorm:"index"               json:"timestamp"`
}
