package service

import (
	"context"
	"fmt"

	"villahub/internal/microservices/http-api/models"
	"villahub/internal/microservices/http-api/repository"
	"villahub/internal/microservices/realtime"
)

type CargoService interface {
	CreateCargo(ctx context.Context, cargo *models.Cargo) (synced bool, err error)
	UpdateCargo(ctx context.Context, cargo *models.Cargo) (synced bool, err error)
	DeleteCargo(ctx context.Context, id int64) (synced bool, err error)
	// RecordCall counts one call attempt to the recipient; reached marks the
	// cargo as called.
	RecordCall(ctx context.Context, id int64, reached bool) (*models.Cargo, bool, error)
	GetCargo(ctx context.Context, id int64) (*models.Cargo, error)
	ListCargos(ctx context.Context, villaID int64) ([]models.Cargo, error)
	ListPendingCalls(ctx context.Context) ([]models.Cargo, error)
}

type cargoService struct {
	repo    repository.CargoRepository
	relayer Relayer
}

func NewCargoService(repo repository.CargoRepository, relayer Relayer) CargoService {
	return &cargoService{repo: repo, relayer: relayer}
}

func (s *cargoService) CreateCargo(ctx context.Context, cargo *models.Cargo) (bool, error) {
	if cargo.CargoDate == nil {
		t := now()
		cargo.CargoDate = &t
	}
	if err := s.repo.Create(ctx, cargo); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpAdd, realtime.CargoToDTO(*cargo)), nil
}

func (s *cargoService) UpdateCargo(ctx context.Context, cargo *models.Cargo) (bool, error) {
	if cargo.ID == 0 {
		return false, fmt.Errorf("update cargo: id required: %w", ErrInvalidInput)
	}
	if err := s.repo.Update(ctx, cargo); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpUpdate, realtime.CargoToDTO(*cargo)), nil
}

func (s *cargoService) DeleteCargo(ctx context.Context, id int64) (bool, error) {
	cargo := models.Cargo{ID: id}
	if err := s.repo.Delete(ctx, &cargo); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpDelete, realtime.CargoToDTO(cargo)), nil
}

func (s *cargoService) RecordCall(ctx context.Context, id int64, reached bool) (*models.Cargo, bool, error) {
	cargo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	cargo.CallAttemptCount++
	if reached {
		t := now()
		cargo.IsCalled = true
		cargo.CallDate = &t
	}
	synced, err := s.UpdateCargo(ctx, cargo)
	if err != nil {
		return nil, false, err
	}
	return cargo, synced, nil
}

func (s *cargoService) GetCargo(ctx context.Context, id int64) (*models.Cargo, error) {
	return s.repo.GetByID(ctx, id)
}

// ListCargos returns every cargo when villaID is zero
func (s *cargoService) ListCargos(ctx context.Context, villaID int64) ([]models.Cargo, error) {
	if villaID == 0 {
		return s.repo.List(ctx)
	}
	return s.repo.ListByVilla(ctx, villaID)
}

func (s *cargoService) ListPendingCalls(ctx context.Context) ([]models.Cargo, error) {
	return s.repo.ListPendingCalls(ctx)
}
