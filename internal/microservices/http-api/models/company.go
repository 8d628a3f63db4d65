package models

import "time"

// Company is a cargo/delivery company.
type Company struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyName         string    `gorm:"not null;index" json:"company_name"`
	CompanyDeliveryType string    `gorm:"type:text" json:"company_delivery_type"`
	CompanyNotes        string    `gorm:"type:text" json:"company_notes"`
	IsCargoInOperation  bool      `gorm:"not null" json:"is_cargo_in_operation"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

// LastUpdated is the remote modification time; zero when unknown.
func (m Company) LastUpdated() time.Time { return m.UpdatedAt }
