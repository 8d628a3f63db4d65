package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"villahub/internal/microservices/http-api/repository"
	"villahub/internal/microservices/realtime"
)

// SyncClient is the part of realtime.Client the settings and status surface needs.
type SyncClient interface {
	State() realtime.ConnectionState
	Endpoint() realtime.Endpoint
	Reconnecting() bool
	Connect(ctx context.Context) error
	SetEndpoint(ctx context.Context, e realtime.Endpoint) error
}

// PendingCounter reports frames waiting for the next connection.
type PendingCounter interface {
	Pending(ctx context.Context) int
}

type SyncStatus struct {
	State        string `json:"state"`
	Connected    bool   `json:"connected"`
	Reconnecting bool   `json:"reconnecting"`
	Endpoint     string `json:"endpoint"`
	Pending      int    `json:"pending"`
}

type SettingsService interface {
	Endpoint() realtime.Endpoint
	// UpdateEndpoint persists e and switches the client to it. A server that
	// cannot be reached is not an error: connected is false and the
	// reconnection loop keeps trying.
	UpdateEndpoint(ctx context.Context, e realtime.Endpoint) (connected bool, err error)
	Reconnect(ctx context.Context) error
	Status(ctx context.Context) SyncStatus
}

type settingsService struct {
	settings repository.SettingRepository
	client   SyncClient
	pending  PendingCounter
	logger   *slog.Logger
}

func NewSettingsService(settings repository.SettingRepository, client SyncClient, pending PendingCounter, logger *slog.Logger) SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &settingsService{settings: settings, client: client, pending: pending, logger: logger}
}

func (s *settingsService) Endpoint() realtime.Endpoint {
	return s.client.Endpoint()
}

func (s *settingsService) UpdateEndpoint(ctx context.Context, e realtime.Endpoint) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	// the switch outlives the request that asked for it
	ctx = context.WithoutCancel(ctx)
	if err := s.settings.SaveEndpoint(ctx, e.Host, e.Port); err != nil {
		return false, err
	}

	err := s.client.SetEndpoint(ctx, e)
	if errors.Is(err, realtime.ErrClientClosed) {
		return false, err
	}
	if err != nil {
		s.logger.Warn("endpoint_connect_failed", "endpoint", e.String(), "error", err)
		return false, nil
	}
	return true, nil
}

func (s *settingsService) Reconnect(ctx context.Context) error {
	return s.client.Connect(context.WithoutCancel(ctx))
}

func (s *settingsService) Status(ctx context.Context) SyncStatus {
	state := s.client.State()
	status := SyncStatus{
		State:        state.String(),
		Connected:    state == realtime.StateConnected,
		Reconnecting: s.client.Reconnecting(),
		Endpoint:     s.client.Endpoint().String(),
	}
	if s.pending != nil {
		status.Pending = s.pending.Pending(ctx)
	}
	return status
}

// ResolveEndpoint returns the persisted endpoint, or fallback when none was
// saved or the saved one is invalid.
func ResolveEndpoint(ctx context.Context, settings repository.SettingRepository, fallback realtime.Endpoint, logger *slog.Logger) realtime.Endpoint {
	host, port, err := settings.LoadEndpoint(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Warn("stored_endpoint_unreadable", "error", err)
		}
		return fallback
	}
	stored := realtime.Endpoint{Host: host, Port: port}
	if err := stored.Validate(); err != nil {
		logger.Warn("stored_endpoint_invalid", "endpoint", stored.String(), "error", err)
		return fallback
	}
	return stored
}
