package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"villahub/internal/microservices/http-api/models"
	"villahub/internal/microservices/http-api/repository"
)

// Mutator is the write side of one local-store table.
type Mutator[T any] interface {
	Upsert(ctx context.Context, v *T) error
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, v *T) error
}

// Store is what the Dispatcher writes remote changes to.
type Store struct {
	Villas          Mutator[models.Villa]
	Contacts        Mutator[models.Contact]
	Companies       Mutator[models.Company]
	Cargos          Mutator[models.Cargo]
	VillaContacts   Mutator[models.VillaContact]
	CompanyContacts Mutator[models.CompanyContact]
}

// StoreFromRepositories adapts the local-store repositories.
func StoreFromRepositories(s *repository.Store) Store {
	return Store{
		Villas:          s.Villas,
		Contacts:        s.Contacts,
		Companies:       s.Companies,
		Cargos:          s.Cargos,
		VillaContacts:   s.VillaContacts,
		CompanyContacts: s.CompanyContacts,
	}
}

// Dispatcher applies data frames pushed by the server to the local store.
type Dispatcher struct {
	store Store
	log   *slog.Logger
}

func NewDispatcher(store Store, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{store: store, log: logger.With("component", "dispatcher")}
}

// Run handles events until the channel closes or ctx is done.
func (d *Dispatcher) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			d.Handle(ctx, e)
		}
	}
}

// Handle applies one event. Status events are skipped; undecodable frames
// are logged and dropped; store errors are logged. Nothing here is fatal.
func (d *Dispatcher) Handle(ctx context.Context, e Event) {
	data, ok := e.(DataEvent)
	if !ok {
		return
	}

	msg, err := Decode(data.Raw)
	switch {
	case errors.Is(err, ErrStatusFrame):
		return
	case errors.Is(err, ErrUnknownType):
		d.log.Debug("message_ignored", "error", err)
		return
	case err != nil:
		d.log.Warn("message_discarded", "error", err, "size", len(data.Raw))
		return
	}

	if err := d.Apply(ctx, msg); err != nil {
		d.log.Error("apply_failed", "type", msg.Type, "error", err)
		return
	}
	d.log.Debug("message_applied", "type", msg.Type)
}

// Apply performs msg on the local store. add is insert-or-replace, so the
// same message applied twice leaves the store unchanged; update and delete
// of a missing record are no-ops. An add without an identifier gets a fresh
// local id each time it is applied, so replaying it inserts another row.
func (d *Dispatcher) Apply(ctx context.Context, msg *Message) error {
	switch p := msg.Payload.(type) {
	case VillaDTO:
		return applyOp(ctx, d.store.Villas, msg.Op, p.Model())
	case ContactDTO:
		return applyOp(ctx, d.store.Contacts, msg.Op, p.Model())
	case CompanyDTO:
		return applyOp(ctx, d.store.Companies, msg.Op, p.Model())
	case CargoDTO:
		return applyOp(ctx, d.store.Cargos, msg.Op, p.Model())
	case VillaContactDTO:
		return applyOp(ctx, d.store.VillaContacts, msg.Op, p.Model())
	case CompanyContactDTO:
		return applyOp(ctx, d.store.CompanyContacts, msg.Op, p.Model())
	default:
		return fmt.Errorf("%w: %T", ErrUnknownType, msg.Payload)
	}
}

func applyOp[T any](ctx context.Context, m Mutator[T], op Operation, v T) error {
	if m == nil {
		return fmt.Errorf("no store for %T", v)
	}

	var err error
	switch op {
	case OpAdd:
		err = m.Upsert(ctx, &v)
	case OpUpdate:
		err = m.Update(ctx, &v)
	case OpDelete:
		err = m.Delete(ctx, &v)
	default:
		return fmt.Errorf("unknown operation %q", op)
	}

	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}
