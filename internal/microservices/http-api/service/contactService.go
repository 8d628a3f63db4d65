package service

import (
	"context"
	"fmt"

	"villahub/internal/microservices/http-api/models"
	"villahub/internal/microservices/http-api/repository"
	"villahub/internal/microservices/realtime"
)

type ContactService interface {
	CreateContact(ctx context.Context, contact *models.Contact) (synced bool, err error)
	UpdateContact(ctx context.Context, contact *models.Contact) (synced bool, err error)
	DeleteContact(ctx context.Context, id int64) (synced bool, err error)
	GetContact(ctx context.Context, id int64) (*models.Contact, error)
	ListContacts(ctx context.Context) ([]models.Contact, error)
	SearchContacts(ctx context.Context, query string) ([]models.Contact, error)
}

type contactService struct {
	repo    repository.ContactRepository
	relayer Relayer
}

func NewContactService(repo repository.ContactRepository, relayer Relayer) ContactService {
	return &contactService{repo: repo, relayer: relayer}
}

func (s *contactService) CreateContact(ctx context.Context, contact *models.Contact) (bool, error) {
	contact.UpdatedAt = now()
	if err := s.repo.Create(ctx, contact); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpAdd, realtime.ContactToDTO(*contact)), nil
}

func (s *contactService) UpdateContact(ctx context.Context, contact *models.Contact) (bool, error) {
	if contact.ID == 0 {
		return false, fmt.Errorf("update contact: id required: %w", ErrInvalidInput)
	}
	contact.UpdatedAt = now()
	if err := s.repo.Update(ctx, contact); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpUpdate, realtime.ContactToDTO(*contact)), nil
}

func (s *contactService) DeleteContact(ctx context.Context, id int64) (bool, error) {
	contact := models.Contact{ID: id}
	if err := s.repo.Delete(ctx, &contact); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpDelete, realtime.ContactToDTO(contact)), nil
}

func (s *contactService) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *contactService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return s.repo.List(ctx)
}

func (s *contactService) SearchContacts(ctx context.Context, query string) ([]models.Contact, error) {
	if query == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, query)
}
