package service

import (
	"context"
	"time"

	"maintcheck/internal/domain"
	"maintcheck/internal/repository"

	"go.uber.org/zap"
)

// DelayedCheck decorates a pending check with reporting data. Neither
// field is stored; both are recomputed on every scan.
type DelayedCheck struct {
	*domain.DeviceCheck
	DaysOverdue int             `json:"daysOverdue"`
	Severity    domain.Severity `json:"severity"`
}

// DelayedService computes the overdue set. Scanning is request-triggered
// only; an external cron-style caller decides when to invoke it.
type DelayedService interface {
	FindDelayed(ctx context.Context, now time.Time) ([]*DelayedCheck, error)
	Dispatch(ctx context.Context, now time.Time) (*DispatchResult, error)
}

type delayedService struct {
	checksRepo   repository.ChecksRepository
	devicesRepo  repository.DevicesRepository
	settingsRepo repository.SettingsRepository
	notifier     Notifier
	logger       *zap.Logger
}

func NewDelayedService(
	checksRepo repository.ChecksRepository,
	devicesRepo repository.DevicesRepository,
	settingsRepo repository.SettingsRepository,
	notifier Notifier,
	logger *zap.Logger,
) DelayedService {
	return &delayedService{
		checksRepo:   checksRepo,
		devicesRepo:  devicesRepo,
		settingsRepo: settingsRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// FindDelayed returns every pending check whose scheduled (year, week)
// is strictly earlier than weekOf(now). The same WeekOf that produced
// the check's coordinates classifies it here, so the two can never
// disagree about week boundaries.
func (s *delayedService) FindDelayed(ctx context.Context, now time.Time) ([]*DelayedCheck, error) {
	nowYear, nowWeek := domain.WeekOf(now)

	checks, err := s.checksRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("FindDelayed: listing checks failed", zap.Error(err))
		return nil, err
	}

	delayed := make([]*DelayedCheck, 0)
	for _, c := range checks {
		if c.Status != domain.CheckPending {
			continue
		}
		if !domain.WeekBefore(c.Year, c.Week, nowYear, nowWeek) {
			continue
		}
		days := domain.DaysOverdue(nowYear, nowWeek, c.Year, c.Week)
		delayed = append(delayed, &DelayedCheck{
			DeviceCheck: c,
			DaysOverdue: days,
			Severity:    domain.ClassifySeverity(days),
		})
	}
	return delayed, nil
}

// DispatchResult summarizes one push of the overdue digest to the
// external notifier.
type DispatchResult struct {
	Delayed    int  `json:"delayed"`
	Recipients int  `json:"recipients"`
	Pushed     bool `json:"pushed"`
}

// Dispatch assembles the overdue digest (delayed checks joined with
// their devices, plus the subscribed roster) and hands it to the
// notifier. Delivery itself is the notifier's concern. Nothing is pushed
// when the notifier is disabled or there is nothing overdue.
func (s *delayedService) Dispatch(ctx context.Context, now time.Time) (*DispatchResult, error) {
	delayed, err := s.FindDelayed(ctx, now)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	result := &DispatchResult{Delayed: len(delayed), Recipients: len(settings.SelectedEmployees)}
	if s.notifier == nil || !s.notifier.Enabled() || len(delayed) == 0 {
		return result, nil
	}

	deviceIDs := make([]string, 0, len(delayed))
	for _, d := range delayed {
		deviceIDs = append(deviceIDs, d.DeviceID)
	}
	devices, err := s.devicesRepo.GetMany(ctx, deviceIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Device, len(devices))
	for _, d := range devices {
		byID[d.ID] = d
	}

	digest := Digest{GeneratedAt: now, Recipients: settings.SelectedEmployees}
	for _, d := range delayed {
		item := DigestItem{Check: d}
		if dev, ok := byID[d.DeviceID]; ok {
			item.DeviceName = dev.Name
			item.DeviceLocation = dev.Location
		}
		digest.Items = append(digest.Items, item)
	}
	if err := s.notifier.Push(ctx, digest); err != nil {
		s.logger.Error("Dispatch: notifier push failed", zap.Error(err))
		return nil, err
	}
	result.Pushed = true
	s.logger.Info("overdue digest dispatched",
		zap.Int("delayed", result.Delayed),
		zap.Int("recipients", result.Recipients),
	)
	return result, nil
}
