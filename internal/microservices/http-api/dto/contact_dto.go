package dto

import "villahub/internal/microservices/http-api/models"

// ContactRequest: payload to create or update a contact
type ContactRequest struct {
	ContactName  string `json:"contact_name" binding:"required"`
	ContactPhone string `json:"contact_phone"`
	ContactNotes string `json:"contact_notes"`
}

func (r ContactRequest) ToModel(id int64) *models.Contact {
	return &models.Contact{
		ID:           id,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		ContactNotes: r.ContactNotes,
	}
}

// CompanyRequest: payload to create or update a cargo company
type CompanyRequest struct {
	CompanyName         string `json:"company_name" binding:"required"`
	CompanyDeliveryType string `json:"company_delivery_type"`
	CompanyNotes        string `json:"company_notes"`
	IsCargoInOperation  bool   `json:"is_cargo_in_operation"`
}

func (r CompanyRequest) ToModel(id int64) *models.Company {
	return &models.Company{
		ID:                  id,
		CompanyName:         r.CompanyName,
		CompanyDeliveryType: r.CompanyDeliveryType,
		CompanyNotes:        r.CompanyNotes,
		IsCargoInOperation:  r.IsCargoInOperation,
	}
}
