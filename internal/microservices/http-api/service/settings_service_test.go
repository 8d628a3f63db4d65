package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"villahub/internal/microservices/realtime"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUpdateEndpoint_PersistsAndSwitches(t *testing.T) {
	store := newTestStore(t)
	mockClient := new(MockSyncClient)
	settingsService := NewSettingsService(store.Settings, mockClient, nil, quietLogger())
	ctx := context.Background()
	target := realtime.Endpoint{Host: "10.0.0.2", Port: 9000}

	mockClient.On("SetEndpoint", mock.Anything, target).Return(nil)

	connected, err := settingsService.UpdateEndpoint(ctx, target)
	require.NoError(t, err)
	assert.True(t, connected)

	host, port, err := store.Settings.LoadEndpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2", host)
	assert.Equal(t, 9000, port)
	mockClient.AssertExpectations(t)
}

func TestUpdateEndpoint_UnreachableIsNotAnError(t *testing.T) {
	store := newTestStore(t)
	mockClient := new(MockSyncClient)
	settingsService := NewSettingsService(store.Settings, mockClient, nil, quietLogger())
	ctx := context.Background()
	target := realtime.Endpoint{Host: "10.0.0.3", Port: 9000}

	mockClient.On("SetEndpoint", mock.Anything, target).Return(errors.New("connection refused"))

	connected, err := settingsService.UpdateEndpoint(ctx, target)
	assert.NoError(t, err)
	assert.False(t, connected)

	mockClient.ExpectedCalls = nil
	mockClient.On("SetEndpoint", mock.Anything, target).Return(realtime.ErrClientClosed)
	_, err = settingsService.UpdateEndpoint(ctx, target)
	assert.ErrorIs(t, err, realtime.ErrClientClosed)
}

func TestUpdateEndpoint_SurvivesCancelledRequest(t *testing.T) {
	store := newTestStore(t)
	mockClient := new(MockSyncClient)
	settingsService := NewSettingsService(store.Settings, mockClient, nil, quietLogger())
	target := realtime.Endpoint{Host: "10.0.0.4", Port: 9000}

	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	mockClient.On("SetEndpoint", live, target).Return(nil)
	mockClient.On("Connect", live).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	connected, err := settingsService.UpdateEndpoint(ctx, target)
	require.NoError(t, err)
	assert.True(t, connected)
	require.NoError(t, settingsService.Reconnect(ctx))
	mockClient.AssertExpectations(t)
}

func TestUpdateEndpoint_RejectsInvalid(t *testing.T) {
	store := newTestStore(t)
	mockClient := new(MockSyncClient)
	settingsService := NewSettingsService(store.Settings, mockClient, nil, quietLogger())

	_, err := settingsService.UpdateEndpoint(context.Background(), realtime.Endpoint{Host: "x", Port: 70000})

	assert.ErrorIs(t, err, ErrInvalidInput)
	mockClient.AssertNotCalled(t, "SetEndpoint", mock.Anything, mock.Anything)
}

func TestStatus_Snapshot(t *testing.T) {
	mockClient := new(MockSyncClient)
	mockClient.On("State").Return(realtime.StateDisconnected)
	mockClient.On("Reconnecting").Return(true)
	mockClient.On("Endpoint").Return(realtime.Endpoint{Host: "localhost", Port: 8080})
	settingsService := NewSettingsService(nil, mockClient, fixedPending(3), quietLogger())

	status := settingsService.Status(context.Background())

	assert.Equal(t, SyncStatus{
		State:        "disconnected",
		Connected:    false,
		Reconnecting: true,
		Endpoint:     "localhost:8080",
		Pending:      3,
	}, status)
}

func TestResolveEndpoint(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	fallback := realtime.Endpoint{Host: "localhost", Port: 8080}

	assert.Equal(t, fallback, ResolveEndpoint(ctx, store.Settings, fallback, quietLogger()))

	require.NoError(t, store.Settings.SaveEndpoint(ctx, "sync.example", 7000))
	assert.Equal(t, realtime.Endpoint{Host: "sync.example", Port: 7000}, ResolveEndpoint(ctx, store.Settings, fallback, quietLogger()))

	require.NoError(t, store.Settings.Set(ctx, "sync.port", "not-a-port"))
	assert.Equal(t, fallback, ResolveEndpoint(ctx, store.Settings, fallback, quietLogger()))
}
