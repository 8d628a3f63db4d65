package repository

import (
	"context"
	"fmt"

	"villahub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type VillaContactRepository interface {
	Upsert(ctx context.Context, link *models.VillaContact) error
	Update(ctx context.Context, link *models.VillaContact) error
	Delete(ctx context.Context, link *models.VillaContact) error
	ListByVilla(ctx context.Context, villaID int64) ([]models.VillaContact, error)
	ListByContact(ctx context.Context, contactID int64) ([]models.VillaContact, error)
}

type villaContactRepository struct {
	crudRepository[models.VillaContact]
}

func NewVillaContactRepository(db *gorm.DB) VillaContactRepository {
	return &villaContactRepository{newCrudRepository[models.VillaContact](db, "villa contact")}
}

// Update and Delete refuse partial keys, which gorm would widen to every link
// of one side.
func (r *villaContactRepository) Update(ctx context.Context, link *models.VillaContact) error {
	if link.VillaID <= 0 || link.ContactID <= 0 {
		return fmt.Errorf("update villa contact: both ids required")
	}
	return r.crudRepository.Update(ctx, link)
}

func (r *villaContactRepository) Delete(ctx context.Context, link *models.VillaContact) error {
	if link.VillaID <= 0 || link.ContactID <= 0 {
		return fmt.Errorf("delete villa contact: both ids required")
	}
	return r.crudRepository.Delete(ctx, link)
}

func (r *villaContactRepository) ListByVilla(ctx context.Context, villaID int64) ([]models.VillaContact, error) {
	var links []models.VillaContact
	if err := r.db.WithContext(ctx).
		Where("villa_id = ?", villaID).
		Order("contact_id").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list villa contacts: %w", err)
	}
	return links, nil
}

func (r *villaContactRepository) ListByContact(ctx context.Context, contactID int64) ([]models.VillaContact, error) {
	var links []models.VillaContact
	if err := r.db.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("villa_id").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list contact villas: %w", err)
	}
	return links, nil
}

type CompanyContactRepository interface {
	Upsert(ctx context.Context, link *models.CompanyContact) error
	Update(ctx context.Context, link *models.CompanyContact) error
	Delete(ctx context.Context, link *models.CompanyContact) error
	ListByCompany(ctx context.Context, companyID int64) ([]models.CompanyContact, error)
}

type companyContactRepository struct {
	crudRepository[models.CompanyContact]
}

func NewCompanyContactRepository(db *gorm.DB) CompanyContactRepository {
	return &companyContactRepository{newCrudRepository[models.CompanyContact](db, "company contact")}
}

func (r *companyContactRepository) Update(ctx context.Context, link *models.CompanyContact) error {
	if link.CompanyID <= 0 || link.ContactID <= 0 {
		return fmt.Errorf("update company contact: both ids required")
	}
	return r.crudRepository.Update(ctx, link)
}

func (r *companyContactRepository) Delete(ctx context.Context, link *models.CompanyContact) error {
	if link.CompanyID <= 0 || link.ContactID <= 0 {
		return fmt.Errorf("delete company contact: both ids required")
	}
	return r.crudRepository.Delete(ctx, link)
}

func (r *companyContactRepository) ListByCompany(ctx context.Context, companyID int64) ([]models.CompanyContact, error) {
	var links []models.CompanyContact
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("contact_id").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list company contacts: %w", err)
	}
	return links, nil
}
