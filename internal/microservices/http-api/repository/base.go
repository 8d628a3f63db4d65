package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// crudRepository holds the mutations shared by every synced entity.
// Records are addressed by their primary key fields, so the same code serves
// single-id tables and the composite-key association tables.
type crudRepository[T any] struct {
	db   *gorm.DB
	name string // used in error messages
}

func newCrudRepository[T any](db *gorm.DB, name string) crudRepository[T] {
	return crudRepository[T]{db: db, name: name}
}

// Create inserts v; a zero primary key is assigned by the database.
func (r crudRepository[T]) Create(ctx context.Context, v *T) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.name, err)
	}
	return nil
}

// Upsert is insert-or-replace keyed on the primary key. Applying the same
// record twice leaves the table unchanged.
func (r crudRepository[T]) Upsert(ctx context.Context, v *T) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(v).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", r.name, err)
	}
	return nil
}

// stamped models carry a modification time that an update without one must
// not clear.
type stamped interface {
	LastUpdated() time.Time
}

// Update overwrites every column of an existing record, except a zero
// updated_at which keeps the stored value. ErrNotFound when no row has v's
// primary key.
func (r crudRepository[T]) Update(ctx context.Context, v *T) error {
	tx := r.db.WithContext(ctx).Model(v).Select("*")
	if s, ok := any(v).(stamped); ok && s.LastUpdated().IsZero() {
		tx = tx.Omit("updated_at")
	}
	result := tx.Updates(v)
	if result.Error != nil {
		return fmt.Errorf("update %s: %w", r.name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update %s: %w", r.name, ErrNotFound)
	}
	return nil
}

// Delete removes the record with v's primary key. ErrNotFound when nothing
// was deleted.
func (r crudRepository[T]) Delete(ctx context.Context, v *T) error {
	result := r.db.WithContext(ctx).Delete(v)
	if result.Error != nil {
		return fmt.Errorf("delete %s: %w", r.name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete %s: %w", r.name, ErrNotFound)
	}
	return nil
}

func (r crudRepository[T]) getByID(ctx context.Context, id int64) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get %s %d: %w", r.name, id, ErrNotFound)
		}
		return nil, fmt.Errorf("get %s %d: %w", r.name, id, err)
	}
	return &v, nil
}

func (r crudRepository[T]) list(ctx context.Context, order string) ([]T, error) {
	var items []T
	if err := r.db.WithContext(ctx).Order(order).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return items, nil
}
