package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"villahub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SettingSyncHost = "sync.host"
	SettingSyncPort = "sync.port"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	LoadEndpoint(ctx context.Context) (host string, port int, err error)
	SaveEndpoint(ctx context.Context, host string, port int) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Get returns ErrNotFound when the key was never set
func (r *settingRepository) Get(ctx context.Context, key string) (string, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return setting.Value, nil
}

func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&models.Setting{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// LoadEndpoint returns ErrNotFound unless both host and port were saved
func (r *settingRepository) LoadEndpoint(ctx context.Context) (string, int, error) {
	host, err := r.Get(ctx, SettingSyncHost)
	if err != nil {
		return "", 0, err
	}
	rawPort, err := r.Get(ctx, SettingSyncPort)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return "", 0, fmt.Errorf("invalid stored port %q: %w", rawPort, err)
	}
	return host, port, nil
}

func (r *settingRepository) SaveEndpoint(ctx context.Context, host string, port int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &settingRepository{db: tx}
		if err := txRepo.Set(ctx, SettingSyncHost, host); err != nil {
			return err
		}
		return txRepo.Set(ctx, SettingSyncPort, strconv.Itoa(port))
	})
}
