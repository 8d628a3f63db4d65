package repository

import (
	"context"

	"villahub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	Upsert(ctx context.Context, company *models.Company) error
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
}

type companyRepository struct {
	crudRepository[models.Company]
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{newCrudRepository[models.Company](db, "company")}
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	return r.getByID(ctx, id)
}

func (r *companyRepository) List(ctx context.Context) ([]models.Company, error) {
	return r.list(ctx, "company_name, id")
}
