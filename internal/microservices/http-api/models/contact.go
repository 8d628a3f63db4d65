package models

import "time"

type Contact struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ContactName  string    `gorm:"not null;index" json:"contact_name"`
	ContactPhone string    `gorm:"type:text" json:"contact_phone"`
	ContactNotes string    `gorm:"type:text" json:"contact_notes"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

// LastUpdated is the remote modification time; zero when unknown.
func (m Contact) LastUpdated() time.Time { return m.UpdatedAt }
