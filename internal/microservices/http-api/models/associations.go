package models

// VillaContact links a contact to a villa (owner, tenant, caretaker...).
type VillaContact struct {
	VillaID     int64  `gorm:"primaryKey;autoIncrement:false" json:"villa_id"`
	ContactID   int64  `gorm:"primaryKey;autoIncrement:false;index" json:"contact_id"`
	IsRealOwner bool   `gorm:"not null" json:"is_real_owner"`
	ContactType string `gorm:"type:text" json:"contact_type"`
}

func (VillaContact) TableName() string {
	return "villa_contacts"
}

// CompanyContact links a contact to a cargo company.
type CompanyContact struct {
	CompanyID int64  `gorm:"primaryKey;autoIncrement:false" json:"company_id"`
	ContactID int64  `gorm:"primaryKey;autoIncrement:false;index" json:"contact_id"`
	Role      string `gorm:"type:text" json:"role"`
}

func (CompanyContact) TableName() string {
	return "company_contacts"
}
