package dto

import (
	"time"

	"villahub/internal/microservices/http-api/models"
)

// CargoRequest: payload to announce or edit a delivery
type CargoRequest struct {
	CompanyID        int64      `json:"company_id" binding:"required,min=1"`
	VillaID          int64      `json:"villa_id" binding:"required,min=1"`
	WhoCalled        string     `json:"who_called"`
	IsCalled         bool       `json:"is_called"`
	CallAttemptCount int        `json:"call_attempt_count" binding:"min=0"`
	CargoDate        *time.Time `json:"cargo_date"`
	CallDate         *time.Time `json:"call_date"`
}

func (r CargoRequest) ToModel(id int64) *models.Cargo {
	return &models.Cargo{
		ID:               id,
		CompanyID:        r.CompanyID,
		VillaID:          r.VillaID,
		WhoCalled:        r.WhoCalled,
		IsCalled:         r.IsCalled,
		CallAttemptCount: r.CallAttemptCount,
		CargoDate:        r.CargoDate,
		CallDate:         r.CallDate,
	}
}

// RecordCallRequest: one call attempt to the recipient of a cargo
type RecordCallRequest struct {
	Reached bool `json:"reached"`
}

// VillaContactRequest: payload to link a contact to a villa
type VillaContactRequest struct {
	ContactID   int64  `json:"contact_id" binding:"required,min=1"`
	IsRealOwner bool   `json:"is_real_owner"`
	ContactType string `json:"contact_type"`
}

// CompanyContactRequest: payload to link a contact to a company
type CompanyContactRequest struct {
	ContactID int64  `json:"contact_id" binding:"required,min=1"`
	Role      string `json:"role"`
}
