package service

import (
	"context"
	"fmt"

	"villahub/internal/microservices/http-api/models"
	"villahub/internal/microservices/http-api/repository"
	"villahub/internal/microservices/realtime"
)

// AssociationService links contacts to villas and companies. Links have no
// update message on the wire, so relinking is an upsert sent as add.
type AssociationService interface {
	LinkVillaContact(ctx context.Context, link *models.VillaContact) (synced bool, err error)
	UnlinkVillaContact(ctx context.Context, villaID, contactID int64) (synced bool, err error)
	ListVillaContacts(ctx context.Context, villaID int64) ([]models.VillaContact, error)
	ListContactVillas(ctx context.Context, contactID int64) ([]models.VillaContact, error)
	LinkCompanyContact(ctx context.Context, link *models.CompanyContact) (synced bool, err error)
	UnlinkCompanyContact(ctx context.Context, companyID, contactID int64) (synced bool, err error)
	ListCompanyContacts(ctx context.Context, companyID int64) ([]models.CompanyContact, error)
}

type associationService struct {
	villaContacts   repository.VillaContactRepository
	companyContacts repository.CompanyContactRepository
	relayer         Relayer
}

func NewAssociationService(
	villaContacts repository.VillaContactRepository,
	companyContacts repository.CompanyContactRepository,
	relayer Relayer,
) AssociationService {
	return &associationService{
		villaContacts:   villaContacts,
		companyContacts: companyContacts,
		relayer:         relayer,
	}
}

func (s *associationService) LinkVillaContact(ctx context.Context, link *models.VillaContact) (bool, error) {
	if err := bothIDs(link.VillaID, link.ContactID); err != nil {
		return false, err
	}
	if err := s.villaContacts.Upsert(ctx, link); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpAdd, realtime.VillaContactToDTO(*link)), nil
}

func (s *associationService) UnlinkVillaContact(ctx context.Context, villaID, contactID int64) (bool, error) {
	if err := bothIDs(villaID, contactID); err != nil {
		return false, err
	}
	link := models.VillaContact{VillaID: villaID, ContactID: contactID}
	if err := s.villaContacts.Delete(ctx, &link); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpDelete, realtime.VillaContactToDTO(link)), nil
}

func (s *associationService) ListVillaContacts(ctx context.Context, villaID int64) ([]models.VillaContact, error) {
	return s.villaContacts.ListByVilla(ctx, villaID)
}

func (s *associationService) ListContactVillas(ctx context.Context, contactID int64) ([]models.VillaContact, error) {
	return s.villaContacts.ListByContact(ctx, contactID)
}

func (s *associationService) LinkCompanyContact(ctx context.Context, link *models.CompanyContact) (bool, error) {
	if err := bothIDs(link.CompanyID, link.ContactID); err != nil {
		return false, err
	}
	if err := s.companyContacts.Upsert(ctx, link); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpAdd, realtime.CompanyContactToDTO(*link)), nil
}

func (s *associationService) UnlinkCompanyContact(ctx context.Context, companyID, contactID int64) (bool, error) {
	if err := bothIDs(companyID, contactID); err != nil {
		return false, err
	}
	link := models.CompanyContact{CompanyID: companyID, ContactID: contactID}
	if err := s.companyContacts.Delete(ctx, &link); err != nil {
		return false, err
	}
	return relay(ctx, s.relayer, realtime.OpDelete, realtime.CompanyContactToDTO(link)), nil
}

func (s *associationService) ListCompanyContacts(ctx context.Context, companyID int64) ([]models.CompanyContact, error) {
	return s.companyContacts.ListByCompany(ctx, companyID)
}

func bothIDs(a, b int64) error {
	if a <= 0 || b <= 0 {
		return fmt.Errorf("link needs both ids: %w", ErrInvalidInput)
	}
	return nil
}
