package dto

import "villahub/internal/microservices/http-api/models"

// VillaRequest: payload to create or update a villa
type VillaRequest struct {
	VillaNo                  int    `json:"villa_no" binding:"required,min=1"`
	VillaName                string `json:"villa_name"`
	VillaNotes               string `json:"villa_notes"`
	VillaStreet              string `json:"villa_street"`
	VillaNavigationURL       string `json:"villa_navigation_url" binding:"omitempty,url"`
	IsVillaUnderConstruction bool   `json:"is_villa_under_construction"`
	IsVillaSpecial           bool   `json:"is_villa_special"`
	IsVillaRental            bool   `json:"is_villa_rental"`
	IsVillaCallFromHome      bool   `json:"is_villa_call_from_home"`
	IsVillaCallForCargo      bool   `json:"is_villa_call_for_cargo"`
	IsVillaEmpty             bool   `json:"is_villa_empty"`
}

func (r VillaRequest) ToModel(id int64) *models.Villa {
	return &models.Villa{
		ID:                       id,
		VillaNo:                  r.VillaNo,
		VillaName:                r.VillaName,
		VillaNotes:               r.VillaNotes,
		VillaStreet:              r.VillaStreet,
		VillaNavigationURL:       r.VillaNavigationURL,
		IsVillaUnderConstruction: r.IsVillaUnderConstruction,
		IsVillaSpecial:           r.IsVillaSpecial,
		IsVillaRental:            r.IsVillaRental,
		IsVillaCallFromHome:      r.IsVillaCallFromHome,
		IsVillaCallForCargo:      r.IsVillaCallForCargo,
		IsVillaEmpty:             r.IsVillaEmpty,
	}
}
