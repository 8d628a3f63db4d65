package service

import (
	"context"
	"errors"
	"time"

	"villahub/internal/microservices/realtime"
)

// ErrInvalidInput marks requests rejected before touching the store.
var ErrInvalidInput = errors.New("invalid input")

// Relayer mirrors a committed local write to the sync server. It reports
// whether the frame went out; false never undoes the local write.
type Relayer interface {
	Relay(ctx context.Context, op realtime.Operation, dto realtime.DTO) bool
}

func relay(ctx context.Context, r Relayer, op realtime.Operation, dto realtime.DTO) bool {
	if r == nil {
		return false
	}
	return r.Relay(ctx, op, dto)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
