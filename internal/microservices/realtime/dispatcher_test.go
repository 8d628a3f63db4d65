package realtime

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"villahub/database"
	"villahub/internal/microservices/http-api/models"
	"villahub/internal/microservices/http-api/repository"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "dispatch.db")))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return repository.NewStore(db)
}

func dataEvent(raw string) DataEvent {
	return DataEvent{Raw: []byte(raw), At: time.Now()}
}

func TestDispatcher_DeleteMissingContactIsNoop(t *testing.T) {
	store := newTestStore(t)
	d := NewDispatcher(StoreFromRepositories(store), discardLogger())
	ctx := context.Background()

	msg, err := Decode([]byte(`{"type":"delete_contact","data":{"contactId":7}}`))
	require.NoError(t, err)
	assert.NoError(t, d.Apply(ctx, msg))

	_, err = store.Contacts.GetByID(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDispatcher_DeleteContact(t *testing.T) {
	store := newTestStore(t)
	d := NewDispatcher(StoreFromRepositories(store), discardLogger())
	ctx := context.Background()
	require.NoError(t, store.Contacts.Upsert(ctx, &models.Contact{ID: 7, ContactName: "Mehmet"}))

	d.Handle(ctx, dataEvent(`{"type":"delete_contact","data":{"contactId":7}}`))

	_, err := store.Contacts.GetByID(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDispatcher_AddIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	d := NewDispatcher(StoreFromRepositories(store), discardLogger())
	ctx := context.Background()
	raw := `{"type":"add_villa","data":{"villaId":12,"villaNo":12,"villaName":"Lemon Tree","isVillaRental":true}}`

	d.Handle(ctx, dataEvent(raw))
	once, err := store.Villas.List(ctx)
	require.NoError(t, err)

	d.Handle(ctx, dataEvent(raw))
	twice, err := store.Villas.List(ctx)
	require.NoError(t, err)

	require.Len(t, once, 1)
	assert.Equal(t, once, twice)
	assert.Equal(t, "Lemon Tree", twice[0].VillaName)
}

func TestDispatcher_UpdateAndOutOfOrderDelivery(t *testing.T) {
	store := newTestStore(t)
	d := NewDispatcher(StoreFromRepositories(store), discardLogger())
	ctx := context.Background()

	// update before add: no-op, then the add lands
	d.Handle(ctx, dataEvent(`{"type":"update_company","data":{"companyId":4,"companyName":"Aras v2"}}`))
	_, err := store.Companies.GetByID(ctx, 4)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	d.Handle(ctx, dataEvent(`{"type":"add_company","data":{"companyId":4,"companyName":"Aras","isCargoInOperation":true}}`))
	d.Handle(ctx, dataEvent(`{"type":"update_company","data":{"companyId":4,"companyName":"Aras Kargo","isCargoInOperation":false}}`))

	company, err := store.Companies.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Aras Kargo", company.CompanyName)
	assert.False(t, company.IsCargoInOperation)
}

func TestDispatcher_Associations(t *testing.T) {
	store := newTestStore(t)
	d := NewDispatcher(StoreFromRepositories(store), discardLogger())
	ctx := context.Background()

	d.Handle(ctx, dataEvent(`{"type":"add_villacontact","data":{"villaId":1,"contactId":2,"isRealOwner":true,"contactType":"owner"}}`))
	d.Handle(ctx, dataEvent(`{"type":"add_villacontact","data":{"villaId":1,"contactId":3,"contactType":"tenant"}}`))
	d.Handle(ctx, dataEvent(`{"type":"delete_villacontact","data":{"villaId":1,"contactId":2}}`))
	d.Handle(ctx, dataEvent(`{"type":"add_companycontact","data":{"companyId":5,"contactId":3,"role":"courier"}}`))

	links, err := store.VillaContacts.ListByVilla(ctx, 1)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, int64(3), links[0].ContactID)

	companyLinks, err := store.CompanyContacts.ListByCompany(ctx, 5)
	require.NoError(t, err)
	require.Len(t, companyLinks, 1)
	assert.Equal(t, "courier", companyLinks[0].Role)
}

func TestDispatcher_AddWithoutIDAssignsLocally(t *testing.T) {
	store := newTestStore(t)
	d := NewDispatcher(StoreFromRepositories(store), discardLogger())
	ctx := context.Background()

	d.Handle(ctx, dataEvent(`{"type":"add_cargo","data":{"companyId":1,"villaId":2,"whoCalled":"guard","cargoDate":"2026-03-01T09:30:00Z"}}`))

	cargos, err := store.Cargos.ListByVilla(ctx, 2)
	require.NoError(t, err)
	require.Len(t, cargos, 1)
	assert.NotZero(t, cargos[0].ID)
	require.NotNil(t, cargos[0].CargoDate)
	assert.True(t, cargos[0].CargoDate.Equal(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)))
}

func TestDispatcher_UpdateWithoutStampKeepsStored(t *testing.T) {
	store := newTestStore(t)
	d := NewDispatcher(StoreFromRepositories(store), discardLogger())
	ctx := context.Background()
	stamp := time.Date(2026, 2, 14, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.Villas.Upsert(ctx, &models.Villa{ID: 8, VillaNo: 8, VillaName: "Olive", UpdatedAt: stamp}))

	d.Handle(ctx, dataEvent(`{"type":"update_villa","data":{"villaId":8,"villaNo":8,"villaName":"Olive Grove"}}`))

	villa, err := store.Villas.GetByID(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, "Olive Grove", villa.VillaName)
	assert.True(t, villa.UpdatedAt.Equal(stamp))

	d.Handle(ctx, dataEvent(`{"type":"update_villa","data":{"villaId":8,"villaNo":8,"villaName":"Olive Grove","updatedAt":1772352000000}}`))
	villa, err = store.Villas.GetByID(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(1772352000000), villa.UpdatedAt.UnixMilli())
}

func TestDispatcher_AddWithoutIDIsNotIdempotent(t *testing.T) {
	store := newTestStore(t)
	d := NewDispatcher(StoreFromRepositories(store), discardLogger())
	ctx := context.Background()
	raw := `{"type":"add_contact","data":{"contactName":"Ayse"}}`

	d.Handle(ctx, dataEvent(raw))
	d.Handle(ctx, dataEvent(raw))

	contacts, err := store.Contacts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
}

type mockContacts struct {
	mock.Mock
}

func (m *mockContacts) Upsert(ctx context.Context, v *models.Contact) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockContacts) Update(ctx context.Context, v *models.Contact) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockContacts) Delete(ctx context.Context, v *models.Contact) error {
	return m.Called(ctx, v).Error(0)
}

func TestDispatcher_IgnoresStatusAndGarbage(t *testing.T) {
	contacts := new(mockContacts)
	d := NewDispatcher(Store{Contacts: contacts}, discardLogger())
	ctx := context.Background()

	d.Handle(ctx, newStatus(StatusConnected, ""))
	d.Handle(ctx, dataEvent("STATUS:CONNECTED"))
	d.Handle(ctx, dataEvent("not json"))
	d.Handle(ctx, dataEvent(`{"type":"add_intercom","data":{"id":1}}`))
	d.Handle(ctx, dataEvent(`{"type":"update_contact","data":{"contactName":"no id"}}`))

	contacts.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	contacts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	contacts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDispatcher_StoreErrorsAreNotFatal(t *testing.T) {
	contacts := new(mockContacts)
	contacts.On("Upsert", mock.Anything, mock.MatchedBy(func(c *models.Contact) bool {
		return c.ContactName == "Ayse"
	})).Return(errors.New("database is locked")).Once()
	contacts.On("Delete", mock.Anything, mock.MatchedBy(func(c *models.Contact) bool {
		return c.ID == 9
	})).Return(repository.ErrNotFound).Once()

	d := NewDispatcher(Store{Contacts: contacts}, discardLogger())
	ctx := context.Background()

	msg, err := Decode([]byte(`{"type":"add_contact","data":{"contactName":"Ayse"}}`))
	require.NoError(t, err)
	assert.EqualError(t, d.Apply(ctx, msg), "database is locked")

	msg, err = Decode([]byte(`{"type":"delete_contact","data":{"contactId":9}}`))
	require.NoError(t, err)
	assert.NoError(t, d.Apply(ctx, msg))

	contacts.AssertExpectations(t)
}

func TestDispatcher_MissingStoreIsAnError(t *testing.T) {
	d := NewDispatcher(Store{}, discardLogger())
	msg, err := Decode([]byte(`{"type":"add_villa","data":{"villaNo":1}}`))
	require.NoError(t, err)
	assert.Error(t, d.Apply(context.Background(), msg))
}

func TestDispatcher_RunStopsWhenStreamCloses(t *testing.T) {
	store := newTestStore(t)
	d := NewDispatcher(StoreFromRepositories(store), discardLogger())
	events := make(chan Event, 2)
	events <- dataEvent(`{"type":"add_contact","data":{"contactId":3,"contactName":"Zeynep"}}`)
	close(events)

	done := make(chan struct{})
	go func() {
		d.Run(context.Background(), events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
	contact, err := store.Contacts.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Zeynep", contact.ContactName)
}
