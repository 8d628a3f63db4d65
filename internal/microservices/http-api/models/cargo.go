package models

import "time"

// Cargo is a single delivery announced by a company for a villa.
type Cargo struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID        int64      `gorm:"not null;index" json:"company_id"`
	VillaID          int64      `gorm:"not null;index" json:"villa_id"`
	WhoCalled        string     `gorm:"type:text" json:"who_called"`
	IsCalled         bool       `gorm:"not null" json:"is_called"`
	CallAttemptCount int        `gorm:"not null" json:"call_attempt_count"`
	CargoDate        *time.Time `json:"cargo_date,omitempty"`
	CallDate         *time.Time `json:"call_date,omitempty"`
}

func (Cargo) TableName() string {
	return "cargos"
}
