package models

import "time"

// Villa is a managed property. VillaNo is the number painted on the gate and
// is what staff search by, so it is indexed but not unique (renumbering happens).
type Villa struct {
	ID                       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VillaNo                  int       `gorm:"not null;index" json:"villa_no"`
	VillaName                string    `gorm:"type:text" json:"villa_name"`
	VillaNotes               string    `gorm:"type:text" json:"villa_notes"`
	VillaStreet              string    `gorm:"type:text" json:"villa_street"`
	VillaNavigationURL       string    `gorm:"type:text" json:"villa_navigation_url"`
	IsVillaUnderConstruction bool      `gorm:"not null" json:"is_villa_under_construction"`
	IsVillaSpecial           bool      `gorm:"not null" json:"is_villa_special"`
	IsVillaRental            bool      `gorm:"not null" json:"is_villa_rental"`
	IsVillaCallFromHome      bool      `gorm:"not null" json:"is_villa_call_from_home"`
	IsVillaCallForCargo      bool      `gorm:"not null" json:"is_villa_call_for_cargo"`
	IsVillaEmpty             bool      `gorm:"not null" json:"is_villa_empty"`
	UpdatedAt                time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (Villa) TableName() string {
	return "villas"
}

// LastUpdated is the remote modification time; zero when unknown.
func (m Villa) LastUpdated() time.Time { return m.UpdatedAt }
