package service

import (
	"context"
	"time"

	"maintcheck/internal/domain"
	"maintcheck/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeviceService is the thin catalog surface the engine needs: devices
// must exist before checks can reference them, and deleting a device
// cascades deletion of its checks in application code.
type DeviceService interface {
	CreateDevice(ctx context.Context, req CreateDeviceRequest) (*domain.Device, error)
	GetDevice(ctx context.Context, id string) (*domain.Device, error)
	ListDevices(ctx context.Context) ([]*domain.Device, error)
	DeleteDevice(ctx context.Context, id string) (*DeleteDeviceResponse, error)
}

type deviceService struct {
	devicesRepo repository.DevicesRepository
	checksRepo  repository.ChecksRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewDeviceService(
	devicesRepo repository.DevicesRepository,
	checksRepo repository.ChecksRepository,
	logger *zap.Logger,
) DeviceService {
	return &deviceService{
		devicesRepo: devicesRepo,
		checksRepo:  checksRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateDeviceRequest registers a device in the catalog.
type CreateDeviceRequest struct {
	Name                 string
	IdentificationNumber string
	Location             string
	PlannedFrequency     int
	PlanComment          string
}

func (s *deviceService) CreateDevice(ctx context.Context, req CreateDeviceRequest) (*domain.Device, error) {
	device := &domain.Device{
		ID:                   uuid.NewString(),
		Name:                 req.Name,
		IdentificationNumber: req.IdentificationNumber,
		Location:             req.Location,
		PlannedFrequency:     req.PlannedFrequency,
		PlanComment:          req.PlanComment,
		Status:               domain.DeviceActive,
		CreatedAt:            s.now(),
	}
	if err := device.Validate(); err != nil {
		return nil, err
	}
	if err := s.devicesRepo.Save(ctx, device); err != nil {
		s.logger.Error("CreateDevice failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}
	s.logger.Info("device created", zap.String("device_id", device.ID), zap.String("name", device.Name))
	return device, nil
}

func (s *deviceService) GetDevice(ctx context.Context, id string) (*domain.Device, error) {
	if id == "" {
		return nil, domain.NewValidation("device", "id", "must not be empty")
	}
	return s.devicesRepo.Get(ctx, id)
}

func (s *deviceService) ListDevices(ctx context.Context) ([]*domain.Device, error) {
	return s.devicesRepo.List(ctx)
}

// DeleteDeviceResponse reports how many checks the cascade removed.
type DeleteDeviceResponse struct {
	ChecksDeleted int `json:"checksDeleted"`
}

// DeleteDevice removes the device and all of its checks. Checks go
// first: if their deletion fails midway the device stays resolvable and
// the operation can be retried.
func (s *deviceService) DeleteDevice(ctx context.Context, id string) (*DeleteDeviceResponse, error) {
	if id == "" {
		return nil, domain.NewValidation("device", "id", "must not be empty")
	}
	if _, err := s.devicesRepo.Get(ctx, id); err != nil {
		return nil, err
	}
	deleted, err := s.checksRepo.DeleteByDevice(ctx, id)
	if err != nil {
		s.logger.Error("DeleteDevice: cascade failed", zap.String("device_id", id), zap.Error(err))
		return nil, err
	}
	if err := s.devicesRepo.Delete(ctx, id); err != nil {
		s.logger.Error("DeleteDevice failed", zap.String("device_id", id), zap.Error(err))
		return nil, err
	}
	s.logger.Info("device deleted",
		zap.String("device_id", id),
		zap.Int("checks_deleted", deleted),
	)
	return &DeleteDeviceResponse{ChecksDeleted: deleted}, nil
}
