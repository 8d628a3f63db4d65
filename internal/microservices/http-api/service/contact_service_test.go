package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"villahub/internal/microservices/http-api/models"
	"villahub/internal/microservices/http-api/repository"
	"villahub/internal/microservices/realtime"
)

func TestCreateContact_RelaysAdd(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRelayer := new(MockRelayer)
	contactService := NewContactService(mockRepo, mockRelayer)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Contact")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Contact).ID = 11 }).
		Return(nil)
	mockRelayer.On("Relay", ctx, realtime.OpAdd, mock.MatchedBy(func(dto realtime.ContactDTO) bool {
		return dto.ContactID != nil && *dto.ContactID == 11 && dto.ContactName == "Ayse" && dto.UpdatedAt != nil
	})).Return(true)

	contact := &models.Contact{ContactName: "Ayse"}
	synced, err := contactService.CreateContact(ctx, contact)

	assert.NoError(t, err)
	assert.True(t, synced)
	assert.False(t, contact.UpdatedAt.IsZero())
	mockRepo.AssertExpectations(t)
	mockRelayer.AssertExpectations(t)
}

func TestCreateContact_OfflineKeepsLocalWrite(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRelayer := new(MockRelayer)
	contactService := NewContactService(mockRepo, mockRelayer)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	mockRelayer.On("Relay", ctx, realtime.OpAdd, mock.Anything).Return(false)

	synced, err := contactService.CreateContact(ctx, &models.Contact{ContactName: "Ayse"})

	assert.NoError(t, err)
	assert.False(t, synced)
	mockRepo.AssertExpectations(t)
}

func TestCreateContact_StoreErrorSkipsRelay(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRelayer := new(MockRelayer)
	contactService := NewContactService(mockRepo, mockRelayer)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

	synced, err := contactService.CreateContact(ctx, &models.Contact{ContactName: "Ayse"})

	assert.EqualError(t, err, "disk full")
	assert.False(t, synced)
	mockRelayer.AssertNotCalled(t, "Relay", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateContact_RequiresID(t *testing.T) {
	mockRepo := new(MockContactRepository)
	contactService := NewContactService(mockRepo, new(MockRelayer))

	_, err := contactService.UpdateContact(context.Background(), &models.Contact{ContactName: "x"})

	assert.ErrorIs(t, err, ErrInvalidInput)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteContact_RelaysIDOnly(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRelayer := new(MockRelayer)
	contactService := NewContactService(mockRepo, mockRelayer)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, &models.Contact{ID: 7}).Return(nil)
	mockRelayer.On("Relay", ctx, realtime.OpDelete, mock.MatchedBy(func(dto realtime.ContactDTO) bool {
		return dto.ContactID != nil && *dto.ContactID == 7
	})).Return(true)

	synced, err := contactService.DeleteContact(ctx, 7)

	assert.NoError(t, err)
	assert.True(t, synced)
	mockRelayer.AssertExpectations(t)
}

func TestDeleteContact_NotFound(t *testing.T) {
	mockRepo := new(MockContactRepository)
	mockRelayer := new(MockRelayer)
	contactService := NewContactService(mockRepo, mockRelayer)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, mock.Anything).Return(repository.ErrNotFound)

	_, err := contactService.DeleteContact(ctx, 99)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	mockRelayer.AssertNotCalled(t, "Relay", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchContacts_EmptyQueryLists(t *testing.T) {
	mockRepo := new(MockContactRepository)
	contactService := NewContactService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return([]models.Contact{{ID: 1}}, nil)
	mockRepo.On("Search", ctx, "ali").Return([]models.Contact{{ID: 2}}, nil)

	all, err := contactService.SearchContacts(ctx, "")
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	found, err := contactService.SearchContacts(ctx, "ali")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), found[0].ID)
	mockRepo.AssertExpectations(t)
}

func TestNilRelayerReportsUnsynced(t *testing.T) {
	mockRepo := new(MockContactRepository)
	contactService := NewContactService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	synced, err := contactService.CreateContact(ctx, &models.Contact{ContactName: "x"})
	assert.NoError(t, err)
	assert.False(t, synced)
}
