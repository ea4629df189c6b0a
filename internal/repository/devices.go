package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"maintcheck/internal/domain"
	"maintcheck/internal/store"
)

// DevicesRepository manages device catalog persistence.
type DevicesRepository interface {
	Get(ctx context.Context, id string) (*domain.Device, error)
	GetMany(ctx context.Context, ids []string) ([]*domain.Device, error)
	List(ctx context.Context) ([]*domain.Device, error)
	Save(ctx context.Context, device *domain.Device) error
	Delete(ctx context.Context, id string) error
}

type kvDevicesRepo struct {
	kv store.Store
}

func NewDevicesRepository(kv store.Store) DevicesRepository {
	return &kvDevicesRepo{kv: kv}
}

func (r *kvDevicesRepo) Get(ctx context.Context, id string) (*domain.Device, error) {
	raw, err := r.kv.Get(ctx, deviceKey(id))
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domain.NewNotFound("device", id)
		}
		return nil, fmt.Errorf("failed to get device %s: %w", id, err)
	}
	var d domain.Device
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("failed to decode device %s: %w", id, err)
	}
	return &d, nil
}

// GetMany returns the devices that exist among ids, in input order.
// Absent ids are omitted, not an error.
func (r *kvDevicesRepo) GetMany(ctx context.Context, ids []string) ([]*domain.Device, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = deviceKey(id)
	}
	raws, err := r.kv.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("failed to mget devices: %w", err)
	}
	devices := make([]*domain.Device, 0, len(raws))
	for _, raw := range raws {
		var d domain.Device
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return nil, fmt.Errorf("failed to decode device: %w", err)
		}
		devices = append(devices, &d)
	}
	return devices, nil
}

func (r *kvDevicesRepo) List(ctx context.Context) ([]*domain.Device, error) {
	entries, err := r.kv.ScanPrefix(ctx, devicePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan devices: %w", err)
	}
	devices := make([]*domain.Device, 0, len(entries))
	for _, e := range entries {
		var d domain.Device
		if err := json.Unmarshal([]byte(e.Value), &d); err != nil {
			return nil, fmt.Errorf("failed to decode device at %s: %w", e.Key, err)
		}
		devices = append(devices, &d)
	}
	return devices, nil
}

func (r *kvDevicesRepo) Save(ctx context.Context, device *domain.Device) error {
	raw, err := json.Marshal(device)
	if err != nil {
		return fmt.Errorf("failed to encode device %s: %w", device.ID, err)
	}
	if err := r.kv.Set(ctx, deviceKey(device.ID), string(raw)); err != nil {
		return fmt.Errorf("failed to save device %s: %w", device.ID, err)
	}
	return nil
}

func (r *kvDevicesRepo) Delete(ctx context.Context, id string) error {
	if err := r.kv.Delete(ctx, deviceKey(id)); err != nil {
		return fmt.Errorf("failed to delete device %s: %w", id, err)
	}
	return nil
}
