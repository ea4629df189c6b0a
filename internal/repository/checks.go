package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"maintcheck/internal/domain"
	"maintcheck/internal/store"
)

// ChecksRepository manages device check persistence. Saves are upserts
// on the deterministic check key, so re-assigning the same (year, week,
// device) overwrites rather than duplicates.
type ChecksRepository interface {
	Get(ctx context.Context, id string) (*domain.DeviceCheck, error)
	Save(ctx context.Context, check *domain.DeviceCheck) error
	SaveAll(ctx context.Context, checks []*domain.DeviceCheck) error
	ListByWeek(ctx context.Context, year, week int) ([]*domain.DeviceCheck, error)
	ListAll(ctx context.Context) ([]*domain.DeviceCheck, error)
	DeleteByDevice(ctx context.Context, deviceID string) (int, error)
}

type kvChecksRepo struct {
	kv store.Store
}

func NewChecksRepository(kv store.Store) ChecksRepository {
	return &kvChecksRepo{kv: kv}
}

func (r *kvChecksRepo) Get(ctx context.Context, id string) (*domain.DeviceCheck, error) {
	raw, err := r.kv.Get(ctx, checkKey(id))
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domain.NewNotFound("check", id)
		}
		return nil, fmt.Errorf("failed to get check %s: %w", id, err)
	}
	var c domain.DeviceCheck
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("failed to decode check %s: %w", id, err)
	}
	return &c, nil
}

func (r *kvChecksRepo) Save(ctx context.Context, check *domain.DeviceCheck) error {
	raw, err := json.Marshal(check)
	if err != nil {
		return fmt.Errorf("failed to encode check %s: %w", check.ID, err)
	}
	if err := r.kv.Set(ctx, checkKey(check.ID), string(raw)); err != nil {
		return fmt.Errorf("failed to save check %s: %w", check.ID, err)
	}
	return nil
}

func (r *kvChecksRepo) SaveAll(ctx context.Context, checks []*domain.DeviceCheck) error {
	entries := make([]store.Entry, 0, len(checks))
	for _, c := range checks {
		raw, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode check %s: %w", c.ID, err)
		}
		entries = append(entries, store.Entry{Key: checkKey(c.ID), Value: string(raw)})
	}
	if err := r.kv.MSet(ctx, entries); err != nil {
		return fmt.Errorf("failed to save checks: %w", err)
	}
	return nil
}

func (r *kvChecksRepo) ListByWeek(ctx context.Context, year, week int) ([]*domain.DeviceCheck, error) {
	return r.scan(ctx, checkWeekPrefix(year, week))
}

func (r *kvChecksRepo) ListAll(ctx context.Context) ([]*domain.DeviceCheck, error) {
	return r.scan(ctx, checkPrefix)
}

func (r *kvChecksRepo) scan(ctx context.Context, prefix string) ([]*domain.DeviceCheck, error) {
	entries, err := r.kv.ScanPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan checks: %w", err)
	}
	checks := make([]*domain.DeviceCheck, 0, len(entries))
	for _, e := range entries {
		var c domain.DeviceCheck
		if err := json.Unmarshal([]byte(e.Value), &c); err != nil {
			return nil, fmt.Errorf("failed to decode check at %s: %w", e.Key, err)
		}
		checks = append(checks, &c)
	}
	// prefix scans are unordered; keep output stable
	sort.Slice(checks, func(i, j int) bool { return checks[i].ID < checks[j].ID })
	return checks, nil
}

// DeleteByDevice removes every check of one device, regardless of week
// or status. Used by the catalog's application-level cascade.
func (r *kvChecksRepo) DeleteByDevice(ctx context.Context, deviceID string) (int, error) {
	checks, err := r.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, c := range checks {
		if c.DeviceID != deviceID {
			continue
		}
		if err := r.kv.Delete(ctx, checkKey(c.ID)); err != nil {
			return deleted, fmt.Errorf("failed to delete check %s: %w", c.ID, err)
		}
		deleted++
	}
	return deleted, nil
}
