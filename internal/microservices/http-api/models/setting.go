package models

import "time"

// Setting is a persisted key-value pair (e.g. the sync endpoint).
type Setting struct {
	Key       string    `gorm:"column:setting_key;primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// All returns every model managed by the local store, in migration order.
func All() []any {
	return []any{
		&Villa{},
		&Contact{},
		&Company{},
		&Cargo{},
		&VillaContact{},
		&CompanyContact{},
		&Setting{},
	}
}
