package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"villahub/database"
	"villahub/internal/microservices/http-api/models"
	"villahub/internal/microservices/http-api/repository"
	"villahub/internal/microservices/realtime"
)

// MockRelayer records relayed mutations
type MockRelayer struct {
	mock.Mock
}

func (m *MockRelayer) Relay(ctx context.Context, op realtime.Operation, dto realtime.DTO) bool {
	args := m.Called(ctx, op, dto)
	return args.Bool(0)
}

// MockContactRepository mocks the ContactRepository interface
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Upsert(ctx context.Context, contact *models.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, contact *models.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contact), args.Error(1)
}

func (m *MockContactRepository) Search(ctx context.Context, query string) ([]models.Contact, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contact), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context) ([]models.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contact), args.Error(1)
}

// MockSyncClient mocks the realtime client surface used by SettingsService
type MockSyncClient struct {
	mock.Mock
}

func (m *MockSyncClient) State() realtime.ConnectionState {
	return m.Called().Get(0).(realtime.ConnectionState)
}

func (m *MockSyncClient) Endpoint() realtime.Endpoint {
	return m.Called().Get(0).(realtime.Endpoint)
}

func (m *MockSyncClient) Reconnecting() bool {
	return m.Called().Bool(0)
}

func (m *MockSyncClient) Connect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSyncClient) SetEndpoint(ctx context.Context, e realtime.Endpoint) error {
	return m.Called(ctx, e).Error(0)
}

type fixedPending int

func (p fixedPending) Pending(context.Context) int { return int(p) }

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "service.db")))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return repository.NewStore(db)
}
