package repository

import "gorm.io/gorm"

// Store groups the repositories of the local store.
type Store struct {
	Villas          VillaRepository
	Contacts        ContactRepository
	Companies       CompanyRepository
	Cargos          CargoRepository
	VillaContacts   VillaContactRepository
	CompanyContacts CompanyContactRepository
	Settings        SettingRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		Villas:          NewVillaRepository(db),
		Contacts:        NewContactRepository(db),
		Companies:       NewCompanyRepository(db),
		Cargos:          NewCargoRepository(db),
		VillaContacts:   NewVillaContactRepository(db),
		CompanyContacts: NewCompanyContactRepository(db),
		Settings:        NewSettingRepository(db),
	}
}
