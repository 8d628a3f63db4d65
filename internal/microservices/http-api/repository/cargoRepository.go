package repository

import (
	"context"
	"fmt"

	"villahub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CargoRepository interface {
	Create(ctx context.Context, cargo *models.Cargo) error
	Upsert(ctx context.Context, cargo *models.Cargo) error
	Update(ctx context.Context, cargo *models.Cargo) error
	Delete(ctx context.Context, cargo *models.Cargo) error
	GetByID(ctx context.Context, id int64) (*models.Cargo, error)
	ListByVilla(ctx context.Context, villaID int64) ([]models.Cargo, error)
	ListPendingCalls(ctx context.Context) ([]models.Cargo, error)
	List(ctx context.Context) ([]models.Cargo, error)
}

type cargoRepository struct {
	crudRepository[models.Cargo]
}

func NewCargoRepository(db *gorm.DB) CargoRepository {
	return &cargoRepository{newCrudRepository[models.Cargo](db, "cargo")}
}

func (r *cargoRepository) GetByID(ctx context.Context, id int64) (*models.Cargo, error) {
	return r.getByID(ctx, id)
}

func (r *cargoRepository) ListByVilla(ctx context.Context, villaID int64) ([]models.Cargo, error) {
	var cargos []models.Cargo
	if err := r.db.WithContext(ctx).
		Where("villa_id = ?", villaID).
		Order("cargo_date DESC, id DESC").
		Find(&cargos).Error; err != nil {
		return nil, fmt.Errorf("list cargos by villa: %w", err)
	}
	return cargos, nil
}

// ListPendingCalls returns deliveries whose recipient has not been called yet
func (r *cargoRepository) ListPendingCalls(ctx context.Context) ([]models.Cargo, error) {
	var cargos []models.Cargo
	if err := r.db.WithContext(ctx).
		Where("is_called = ?", false).
		Order("cargo_date, id").
		Find(&cargos).Error; err != nil {
		return nil, fmt.Errorf("list pending cargo calls: %w", err)
	}
	return cargos, nil
}

func (r *cargoRepository) List(ctx context.Context) ([]models.Cargo, error) {
	return r.list(ctx, "id DESC")
}
