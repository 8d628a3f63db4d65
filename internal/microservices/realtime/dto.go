package realtime

import (
	"errors"
	"time"

	"villahub/internal/microservices/http-api/models"
)

// DTO is the wire projection of one entity. The set of implementations is
// closed: only the types in this file satisfy it.
//
// updatedAt is optional. An update without it keeps the stored modification
// time; an add without it stores a zero time.
type DTO interface {
	entity() Entity
	// key is the payload of a delete marker: identifiers only.
	key() any
	validate(op Operation) error
}

var errMissingID = errors.New("identifier required")

// VillaDTO mirrors models.Villa.
type VillaDTO struct {
	VillaID                  *int64 `json:"villaId,omitempty"`
	VillaNo                  int    `json:"villaNo"`
	VillaName                string `json:"villaName"`
	VillaNotes               string `json:"villaNotes"`
	VillaStreet              string `json:"villaStreet"`
	VillaNavigationURL       string `json:"villaNavigationUrl"`
	IsVillaUnderConstruction bool   `json:"isVillaUnderConstruction"`
	IsVillaSpecial           bool   `json:"isVillaSpecial"`
	IsVillaRental            bool   `json:"isVillaRental"`
	IsVillaCallFromHome      bool   `json:"isVillaCallFromHome"`
	IsVillaCallForCargo      bool   `json:"isVillaCallForCargo"`
	IsVillaEmpty             bool   `json:"isVillaEmpty"`
	UpdatedAt                *int64 `json:"updatedAt,omitempty"` // unix milliseconds
}

// ContactDTO mirrors models.Contact.
type ContactDTO struct {
	ContactID    *int64 `json:"contactId,omitempty"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	ContactNotes string `json:"contactNotes"`
	UpdatedAt    *int64 `json:"updatedAt,omitempty"`
}

// CompanyDTO mirrors models.Company.
type CompanyDTO struct {
	CompanyID           *int64 `json:"companyId,omitempty"`
	CompanyName         string `json:"companyName"`
	CompanyDeliveryType string `json:"companyDeliveryType"`
	CompanyNotes        string `json:"companyNotes"`
	IsCargoInOperation  bool   `json:"isCargoInOperation"`
	UpdatedAt           *int64 `json:"updatedAt,omitempty"`
}

// CargoDTO mirrors models.Cargo.
type CargoDTO struct {
	CargoID          *int64     `json:"cargoId,omitempty"`
	CompanyID        int64      `json:"companyId"`
	VillaID          int64      `json:"villaId"`
	WhoCalled        string     `json:"whoCalled"`
	IsCalled         bool       `json:"isCalled"`
	CallAttemptCount int        `json:"callAttemptCount"`
	CargoDate        *time.Time `json:"cargoDate,omitempty"`
	CallDate         *time.Time `json:"callDate,omitempty"`
}

// VillaContactDTO mirrors models.VillaContact. Both ids are always required.
type VillaContactDTO struct {
	VillaID     int64  `json:"villaId"`
	ContactID   int64  `json:"contactId"`
	IsRealOwner bool   `json:"isRealOwner"`
	ContactType string `json:"contactType"`
}

// CompanyContactDTO mirrors models.CompanyContact.
type CompanyContactDTO struct {
	CompanyID int64  `json:"companyId"`
	ContactID int64  `json:"contactId"`
	Role      string `json:"role"`
}

func (VillaDTO) entity() Entity          { return EntityVilla }
func (ContactDTO) entity() Entity        { return EntityContact }
func (CompanyDTO) entity() Entity        { return EntityCompany }
func (CargoDTO) entity() Entity          { return EntityCargo }
func (VillaContactDTO) entity() Entity   { return EntityVillaContact }
func (CompanyContactDTO) entity() Entity { return EntityCompanyContact }

func (d VillaDTO) key() any {
	return struct {
		VillaID *int64 `json:"villaId"`
	}{d.VillaID}
}

func (d ContactDTO) key() any {
	return struct {
		ContactID *int64 `json:"contactId"`
	}{d.ContactID}
}

func (d CompanyDTO) key() any {
	return struct {
		CompanyID *int64 `json:"companyId"`
	}{d.CompanyID}
}

func (d CargoDTO) key() any {
	return struct {
		CargoID *int64 `json:"cargoId"`
	}{d.CargoID}
}

func (d VillaContactDTO) key() any {
	return struct {
		VillaID   int64 `json:"villaId"`
		ContactID int64 `json:"contactId"`
	}{d.VillaID, d.ContactID}
}

func (d CompanyContactDTO) key() any {
	return struct {
		CompanyID int64 `json:"companyId"`
		ContactID int64 `json:"contactId"`
	}{d.CompanyID, d.ContactID}
}

// requireID: add may omit the identifier, update and delete may not.
func requireID(op Operation, id *int64) error {
	if op == OpAdd {
		return nil
	}
	if id == nil || *id <= 0 {
		return errMissingID
	}
	return nil
}

func (d VillaDTO) validate(op Operation) error   { return requireID(op, d.VillaID) }
func (d ContactDTO) validate(op Operation) error { return requireID(op, d.ContactID) }
func (d CompanyDTO) validate(op Operation) error { return requireID(op, d.CompanyID) }
func (d CargoDTO) validate(op Operation) error   { return requireID(op, d.CargoID) }

func (d VillaContactDTO) validate(Operation) error {
	if d.VillaID <= 0 || d.ContactID <= 0 {
		return errMissingID
	}
	return nil
}

func (d CompanyContactDTO) validate(Operation) error {
	if d.CompanyID <= 0 || d.ContactID <= 0 {
		return errMissingID
	}
	return nil
}

func idPtr(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func idValue(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func millisPtr(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMillis(ms *int64) time.Time {
	if ms == nil {
		return time.Time{}
	}
	return time.UnixMilli(*ms).UTC()
}

func VillaToDTO(v models.Villa) VillaDTO {
	return VillaDTO{
		VillaID:                  idPtr(v.ID),
		VillaNo:                  v.VillaNo,
		VillaName:                v.VillaName,
		VillaNotes:               v.VillaNotes,
		VillaStreet:              v.VillaStreet,
		VillaNavigationURL:       v.VillaNavigationURL,
		IsVillaUnderConstruction: v.IsVillaUnderConstruction,
		IsVillaSpecial:           v.IsVillaSpecial,
		IsVillaRental:            v.IsVillaRental,
		IsVillaCallFromHome:      v.IsVillaCallFromHome,
		IsVillaCallForCargo:      v.IsVillaCallForCargo,
		IsVillaEmpty:             v.IsVillaEmpty,
		UpdatedAt:                millisPtr(v.UpdatedAt),
	}
}

func (d VillaDTO) Model() models.Villa {
	return models.Villa{
		ID:                       idValue(d.VillaID),
		VillaNo:                  d.VillaNo,
		VillaName:                d.VillaName,
		VillaNotes:               d.VillaNotes,
		VillaStreet:              d.VillaStreet,
		VillaNavigationURL:       d.VillaNavigationURL,
		IsVillaUnderConstruction: d.IsVillaUnderConstruction,
		IsVillaSpecial:           d.IsVillaSpecial,
		IsVillaRental:            d.IsVillaRental,
		IsVillaCallFromHome:      d.IsVillaCallFromHome,
		IsVillaCallForCargo:      d.IsVillaCallForCargo,
		IsVillaEmpty:             d.IsVillaEmpty,
		UpdatedAt:                fromMillis(d.UpdatedAt),
	}
}

func ContactToDTO(c models.Contact) ContactDTO {
	return ContactDTO{
		ContactID:    idPtr(c.ID),
		ContactName:  c.ContactName,
		ContactPhone: c.ContactPhone,
		ContactNotes: c.ContactNotes,
		UpdatedAt:    millisPtr(c.UpdatedAt),
	}
}

func (d ContactDTO) Model() models.Contact {
	return models.Contact{
		ID:           idValue(d.ContactID),
		ContactName:  d.ContactName,
		ContactPhone: d.ContactPhone,
		ContactNotes: d.ContactNotes,
		UpdatedAt:    fromMillis(d.UpdatedAt),
	}
}

func CompanyToDTO(c models.Company) CompanyDTO {
	return CompanyDTO{
		CompanyID:           idPtr(c.ID),
		CompanyName:         c.CompanyName,
		CompanyDeliveryType: c.CompanyDeliveryType,
		CompanyNotes:        c.CompanyNotes,
		IsCargoInOperation:  c.IsCargoInOperation,
		UpdatedAt:           millisPtr(c.UpdatedAt),
	}
}

func (d CompanyDTO) Model() models.Company {
	return models.Company{
		ID:                  idValue(d.CompanyID),
		CompanyName:         d.CompanyName,
		CompanyDeliveryType: d.CompanyDeliveryType,
		CompanyNotes:        d.CompanyNotes,
		IsCargoInOperation:  d.IsCargoInOperation,
		UpdatedAt:           fromMillis(d.UpdatedAt),
	}
}

func CargoToDTO(c models.Cargo) CargoDTO {
	return CargoDTO{
		CargoID:          idPtr(c.ID),
		CompanyID:        c.CompanyID,
		VillaID:          c.VillaID,
		WhoCalled:        c.WhoCalled,
		IsCalled:         c.IsCalled,
		CallAttemptCount: c.CallAttemptCount,
		CargoDate:        c.CargoDate,
		CallDate:         c.CallDate,
	}
}

func (d CargoDTO) Model() models.Cargo {
	return models.Cargo{
		ID:               idValue(d.CargoID),
		CompanyID:        d.CompanyID,
		VillaID:          d.VillaID,
		WhoCalled:        d.WhoCalled,
		IsCalled:         d.IsCalled,
		CallAttemptCount: d.CallAttemptCount,
		CargoDate:        d.CargoDate,
		CallDate:         d.CallDate,
	}
}

func VillaContactToDTO(l models.VillaContact) VillaContactDTO {
	return VillaContactDTO{
		VillaID:     l.VillaID,
		ContactID:   l.ContactID,
		IsRealOwner: l.IsRealOwner,
		ContactType: l.ContactType,
	}
}

func (d VillaContactDTO) Model() models.VillaContact {
	return models.VillaContact{
		VillaID:     d.VillaID,
		ContactID:   d.ContactID,
		IsRealOwner: d.IsRealOwner,
		ContactType: d.ContactType,
	}
}

func CompanyContactToDTO(l models.CompanyContact) CompanyContactDTO {
	return CompanyContactDTO{
		CompanyID: l.CompanyID,
		ContactID: l.ContactID,
		Role:      l.Role,
	}
}

func (d CompanyContactDTO) Model() models.CompanyContact {
	return models.CompanyContact{
		CompanyID: d.CompanyID,
		ContactID: d.ContactID,
		Role:      d.Role,
	}
}
