package service

import (
	"context"
	"fmt"

	"villahub/internal/microservices/http-api/models"
	"villahub/internal/microservices/http-api/repository"
	"villahub/internal/microservices/realtime"
)

type VillaService interface {
	CreateVilla(ctx context.Context, villa *models.Villa) (synced bool, err error)
	UpdateVilla(ctx context.Context, villa *models.Villa) (synced bool, err error)
	DeleteVilla(ctx context.Context, id int64) (synced bool, err error)
	GetVilla(ctx context.Context, id int64) (*models.Villa, error)
	ListVillas(ctx context.Context) ([]models.Villa, error)
	FindVillasByNo(ctx context.Context, villaNo int) ([]models.Villa, error)
}

type villaService struct {
	repo    repository.VillaRepository
	relayer Relayer
}

func NewVillaService(repo repository.VillaRepository, relayer Relayer) VillaService {
	return &villaService{repo: repo, relayer: relayer}
}

func (s *villaService) CreateVilla(ctx context.Context, villa *models.Villa) (bool, error) {
	villa.UpdatedAt = now()
	if err := s.repo.Create(ctx, villa); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpAdd, realtime.VillaToDTO(*villa)), nil
}

func (s *villaService) UpdateVilla(ctx context.Context, villa *models.Villa) (bool, error) {
	if villa.ID == 0 {
		return false, fmt.Errorf("update villa: id required: %w", ErrInvalidInput)
	}
	villa.UpdatedAt = now()
	if err := s.repo.Update(ctx, villa); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpUpdate, realtime.VillaToDTO(*villa)), nil
}

func (s *villaService) DeleteVilla(ctx context.Context, id int64) (bool, error) {
	villa := models.Villa{ID: id}
	if err := s.repo.Delete(ctx, &villa); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpDelete, realtime.VillaToDTO(villa)), nil
}

func (s *villaService) GetVilla(ctx context.Context, id int64) (*models.Villa, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *villaService) ListVillas(ctx context.Context) ([]models.Villa, error) {
	return s.repo.List(ctx)
}

func (s *villaService) FindVillasByNo(ctx context.Context, villaNo int) ([]models.Villa, error) {
	return s.repo.FindByNo(ctx, villaNo)
}
