package repository

import (
	"context"
	"fmt"

	"villahub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type VillaRepository interface {
	Create(ctx context.Context, villa *models.Villa) error
	Upsert(ctx context.Context, villa *models.Villa) error
	Update(ctx context.Context, villa *models.Villa) error
	Delete(ctx context.Context, villa *models.Villa) error
	GetByID(ctx context.Context, id int64) (*models.Villa, error)
	FindByNo(ctx context.Context, villaNo int) ([]models.Villa, error)
	List(ctx context.Context) ([]models.Villa, error)
}

type villaRepository struct {
	crudRepository[models.Villa]
}

func NewVillaRepository(db *gorm.DB) VillaRepository {
	return &villaRepository{newCrudRepository[models.Villa](db, "villa")}
}

func (r *villaRepository) GetByID(ctx context.Context, id int64) (*models.Villa, error) {
	return r.getByID(ctx, id)
}

func (r *villaRepository) FindByNo(ctx context.Context, villaNo int) ([]models.Villa, error) {
	var villas []models.Villa
	if err := r.db.WithContext(ctx).
		Where("villa_no = ?", villaNo).
		Order("id").
		Find(&villas).Error; err != nil {
		return nil, fmt.Errorf("find villa by no: %w", err)
	}
	return villas, nil
}

func (r *villaRepository) List(ctx context.Context) ([]models.Villa, error) {
	return r.list(ctx, "villa_no, id")
}
