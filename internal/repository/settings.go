package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"maintcheck/internal/domain"
	"maintcheck/internal/store"
)

// SettingsRepository manages the singleton notification roster.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.NotificationSettings, error)
	Save(ctx context.Context, settings *domain.NotificationSettings) error
}

type kvSettingsRepo struct {
	kv store.Store
}

func NewSettingsRepository(kv store.Store) SettingsRepository {
	return &kvSettingsRepo{kv: kv}
}

// Get returns an empty roster when none has been saved yet.
func (r *kvSettingsRepo) Get(ctx context.Context) (*domain.NotificationSettings, error) {
	raw, err := r.kv.Get(ctx, settingsKey)
	if err != nil {
		if err == store.ErrNotFound {
			return &domain.NotificationSettings{SelectedEmployees: []string{}}, nil
		}
		return nil, fmt.Errorf("failed to get notification settings: %w", err)
	}
	var s domain.NotificationSettings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to decode notification settings: %w", err)
	}
	if s.SelectedEmployees == nil {
		s.SelectedEmployees = []string{}
	}
	return &s, nil
}

func (r *kvSettingsRepo) Save(ctx context.Context, settings *domain.NotificationSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode notification settings: %w", err)
	}
	if err := r.kv.Set(ctx, settingsKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save notification settings: %w", err)
	}
	return nil
}
