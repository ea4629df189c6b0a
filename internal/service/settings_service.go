package service

import (
	"context"

	"maintcheck/internal/domain"
	"maintcheck/internal/repository"

	"go.uber.org/zap"
)

// SettingsService exposes the notification roster. It performs no check
// that the identifiers reference existing employees; that belongs to the
// external user directory.
type SettingsService interface {
	GetSelectedEmployees(ctx context.Context) ([]string, error)
	SetSelectedEmployees(ctx context.Context, ids []string) error
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	logger       *zap.Logger
}

func NewSettingsService(settingsRepo repository.SettingsRepository, logger *zap.Logger) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, logger: logger}
}

func (s *settingsService) GetSelectedEmployees(ctx context.Context) ([]string, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return settings.SelectedEmployees, nil
}

func (s *settingsService) SetSelectedEmployees(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	err := s.settingsRepo.Save(ctx, &domain.NotificationSettings{SelectedEmployees: ids})
	if err != nil {
		s.logger.Error("SetSelectedEmployees failed", zap.Error(err))
		return err
	}
	s.logger.Info("notification roster updated", zap.Int("recipients", len(ids)))
	return nil
}
