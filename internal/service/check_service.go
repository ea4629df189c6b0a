package service

import (
	"context"
	"time"

	"maintcheck/internal/domain"
	"maintcheck/internal/repository"

	"go.uber.org/zap"
)

// systemAssigner marks checks scheduled automatically on completion of a
// prior check, as opposed to checks assigned through a weekly plan.
const systemAssigner = "system"

// CheckService drives the check state machine: plan creation and
// completion with automatic rescheduling.
type CheckService interface {
	CreateChecksForPlan(ctx context.Context, req CreatePlanRequest) (*CreatePlanResponse, error)
	ListWeek(ctx context.Context, year, week int) ([]*domain.DeviceCheck, error)
	CompleteCheck(ctx context.Context, req CompleteCheckRequest) (*CompleteCheckResponse, error)
}

type checkService struct {
	checksRepo  repository.ChecksRepository
	devicesRepo repository.DevicesRepository
	plansRepo   repository.PlansRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewCheckService(
	checksRepo repository.ChecksRepository,
	devicesRepo repository.DevicesRepository,
	plansRepo repository.PlansRepository,
	logger *zap.Logger,
) CheckService {
	return &checkService{
		checksRepo:  checksRepo,
		devicesRepo: devicesRepo,
		plansRepo:   plansRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// CreatePlanRequest assigns a set of devices to be checked in one ISO week.
type CreatePlanRequest struct {
	Year       int
	Week       int
	DeviceIDs  []string
	AssignedBy string
}

// CreatePlanResponse returns the stored plan and the checks it created.
type CreatePlanResponse struct {
	Plan          *domain.WeeklyPlan
	ChecksCreated []*domain.DeviceCheck
}

// CreateChecksForPlan upserts one pending check per device for the given
// (year, week). Re-invoking with overlapping devices for the same week is
// idempotent: the check key is deterministic, so the later write simply
// replaces the earlier one.
func (s *checkService) CreateChecksForPlan(ctx context.Context, req CreatePlanRequest) (*CreatePlanResponse, error) {
	if err := domain.ValidateWeek(req.Year, req.Week); err != nil {
		return nil, err
	}
	if len(req.DeviceIDs) == 0 {
		return nil, domain.NewValidation("plan", "deviceIds", "must not be empty")
	}
	if req.AssignedBy == "" {
		return nil, domain.NewValidation("plan", "assignedBy", "must not be empty")
	}

	now := s.now()
	checks := make([]*domain.DeviceCheck, 0, len(req.DeviceIDs))
	seen := make(map[string]bool, len(req.DeviceIDs))
	for _, deviceID := range req.DeviceIDs {
		if deviceID == "" {
			return nil, domain.NewValidation("plan", "deviceIds", "contains an empty device id")
		}
		if seen[deviceID] {
			continue
		}
		seen[deviceID] = true
		checks = append(checks, &domain.DeviceCheck{
			ID:         domain.CheckID(req.Year, req.Week, deviceID),
			DeviceID:   deviceID,
			Year:       req.Year,
			Week:       req.Week,
			Status:     domain.CheckPending,
			AssignedAt: now,
			AssignedBy: req.AssignedBy,
		})
	}

	if err := s.checksRepo.SaveAll(ctx, checks); err != nil {
		s.logger.Error("CreateChecksForPlan: saving checks failed",
			zap.Int("year", req.Year),
			zap.Int("week", req.Week),
			zap.Error(err),
		)
		return nil, err
	}

	plan := &domain.WeeklyPlan{
		ID:         domain.PlanID(req.Year, req.Week),
		Year:       req.Year,
		Week:       req.Week,
		DeviceIDs:  req.DeviceIDs,
		AssignedBy: req.AssignedBy,
		CreatedAt:  now,
	}
	if err := s.plansRepo.Save(ctx, plan); err != nil {
		s.logger.Error("CreateChecksForPlan: saving plan failed",
			zap.String("plan_id", plan.ID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("weekly plan created",
		zap.String("plan_id", plan.ID),
		zap.Int("checks_created", len(checks)),
		zap.String("assigned_by", req.AssignedBy),
	)
	return &CreatePlanResponse{Plan: plan, ChecksCreated: checks}, nil
}

// ListWeek returns every check scheduled for the given (year, week),
// whether it came from a plan or from automatic rescheduling.
func (s *checkService) ListWeek(ctx context.Context, year, week int) ([]*domain.DeviceCheck, error) {
	if err := domain.ValidateWeek(year, week); err != nil {
		return nil, err
	}
	return s.checksRepo.ListByWeek(ctx, year, week)
}

// CompleteCheckRequest records who completed a check and an optional
// comment. The engine does not require a comment even for overdue
// checks; that policy belongs to the presentation layer.
type CompleteCheckRequest struct {
	CheckID     string
	CompletedBy string
	Comment     string
}

// CompleteCheckResponse carries the completed check and its
// automatically scheduled successor. ScheduledFor is the target date the
// successor's (year, week) was derived from.
type CompleteCheckResponse struct {
	Check        *domain.DeviceCheck
	Next         *domain.DeviceCheck
	ScheduledFor time.Time
}

// CompleteCheck transitions a pending check to completed and schedules
// the successor at weekOf(now + plannedFrequency weeks). The sequence is
// fail-closed at the front (missing check or device creates nothing) but
// has no rollback: a storage failure after the completion write leaves
// the already-applied writes in place and surfaces the error.
func (s *checkService) CompleteCheck(ctx context.Context, req CompleteCheckRequest) (*CompleteCheckResponse, error) {
	if req.CheckID == "" {
		return nil, domain.NewValidation("check", "id", "must not be empty")
	}
	if req.CompletedBy == "" {
		return nil, domain.NewValidation("check", "completedBy", "must not be empty")
	}

	check, err := s.checksRepo.Get(ctx, req.CheckID)
	if err != nil {
		return nil, err
	}
	device, err := s.devicesRepo.Get(ctx, check.DeviceID)
	if err != nil {
		return nil, err
	}
	if check.Status != domain.CheckPending {
		return nil, domain.NewValidation("check", "status", "already completed")
	}

	now := s.now()
	check.Status = domain.CheckCompleted
	check.CompletedAt = &now
	check.CompletedBy = req.CompletedBy
	check.Comment = req.Comment
	if err := s.checksRepo.Save(ctx, check); err != nil {
		s.logger.Error("CompleteCheck: saving completion failed",
			zap.String("check_id", check.ID),
			zap.Error(err),
		)
		return nil, err
	}

	// denormalized convenience fields; not authoritative for scheduling
	device.LastCheckedAt = &now
	device.LastCheckedBy = req.CompletedBy
	if err := s.devicesRepo.Save(ctx, device); err != nil {
		s.logger.Error("CompleteCheck: updating device failed",
			zap.String("device_id", device.ID),
			zap.Error(err),
		)
		return nil, err
	}

	// unconditional: every completion produces exactly one successor. If
	// a check already occupies the successor slot it is overwritten.
	nextDate := now.AddDate(0, 0, device.PlannedFrequency*7)
	nextYear, nextWeek := domain.WeekOf(nextDate)
	next := &domain.DeviceCheck{
		ID:         domain.CheckID(nextYear, nextWeek, device.ID),
		DeviceID:   device.ID,
		Year:       nextYear,
		Week:       nextWeek,
		Status:     domain.CheckPending,
		AssignedAt: now,
		AssignedBy: systemAssigner,
	}
	if err := s.checksRepo.Save(ctx, next); err != nil {
		s.logger.Error("CompleteCheck: scheduling successor failed",
			zap.String("check_id", next.ID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("check completed",
		zap.String("check_id", check.ID),
		zap.String("completed_by", req.CompletedBy),
		zap.String("next_check_id", next.ID),
	)
	return &CompleteCheckResponse{Check: check, Next: next, ScheduledFor: nextDate}, nil
}
