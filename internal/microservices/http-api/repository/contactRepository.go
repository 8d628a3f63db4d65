package repository

import (
	"context"
	"fmt"

	"villahub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	Upsert(ctx context.Context, contact *models.Contact) error
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	Search(ctx context.Context, query string) ([]models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
}

type contactRepository struct {
	crudRepository[models.Contact]
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{newCrudRepository[models.Contact](db, "contact")}
}

func (r *contactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	return r.getByID(ctx, id)
}

// Search matches name or phone, case-insensitively on the name
func (r *contactRepository) Search(ctx context.Context, query string) ([]models.Contact, error) {
	var contacts []models.Contact
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(contact_name) LIKE LOWER(?) OR contact_phone LIKE ?", pattern, pattern).
		Order("contact_name").
		Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	return contacts, nil
}

func (r *contactRepository) List(ctx context.Context) ([]models.Contact, error) {
	return r.list(ctx, "contact_name, id")
}
