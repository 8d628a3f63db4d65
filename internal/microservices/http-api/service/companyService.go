package service

import (
	"context"
	"fmt"

	"villahub/internal/microservices/http-api/models"
	"villahub/internal/microservices/http-api/repository"
	"villahub/internal/microservices/realtime"
)

type CompanyService interface {
	CreateCompany(ctx context.Context, company *models.Company) (synced bool, err error)
	UpdateCompany(ctx context.Context, company *models.Company) (synced bool, err error)
	DeleteCompany(ctx context.Context, id int64) (synced bool, err error)
	GetCompany(ctx context.Context, id int64) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
}

type companyService struct {
	repo    repository.CompanyRepository
	relayer Relayer
}

func NewCompanyService(repo repository.CompanyRepository, relayer Relayer) CompanyService {
	return &companyService{repo: repo, relayer: relayer}
}

func (s *companyService) CreateCompany(ctx context.Context, company *models.Company) (bool, error) {
	company.UpdatedAt = now()
	if err := s.repo.Create(ctx, company); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpAdd, realtime.CompanyToDTO(*company)), nil
}

func (s *companyService) UpdateCompany(ctx context.Context, company *models.Company) (bool, error) {
	if company.ID == 0 {
		return false, fmt.Errorf("update company: id required: %w", ErrInvalidInput)
	}
	company.UpdatedAt = now()
	if err := s.repo.Update(ctx, company); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpUpdate, realtime.CompanyToDTO(*company)), nil
}

func (s *companyService) DeleteCompany(ctx context.Context, id int64) (bool, error) {
	company := models.Company{ID: id}
	if err := s.repo.Delete(ctx, &company); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpDelete, realtime.CompanyToDTO(company)), nil
}

func (s *companyService) GetCompany(ctx context.Context, id int64) (*models.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *companyService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return s.repo.List(ctx)
}
