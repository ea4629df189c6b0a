package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"maintcheck/internal/domain"
	"maintcheck/internal/store"
)

// PlansRepository manages weekly plan persistence, keyed by (year, week).
type PlansRepository interface {
	Get(ctx context.Context, year, week int) (*domain.WeeklyPlan, error)
	Save(ctx context.Context, plan *domain.WeeklyPlan) error
}

type kvPlansRepo struct {
	kv store.Store
}

func NewPlansRepository(kv store.Store) PlansRepository {
	return &kvPlansRepo{kv: kv}
}

func (r *kvPlansRepo) Get(ctx context.Context, year, week int) (*domain.WeeklyPlan, error) {
	raw, err := r.kv.Get(ctx, planKey(year, week))
	if err != nil {
		if err == store.ErrNotFound {
			return nil, domain.NewNotFound("plan", domain.PlanID(year, week))
		}
		return nil, fmt.Errorf("failed to get plan %s: %w", domain.PlanID(year, week), err)
	}
	var p domain.WeeklyPlan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("failed to decode plan %s: %w", domain.PlanID(year, week), err)
	}
	return &p, nil
}

func (r *kvPlansRepo) Save(ctx context.Context, plan *domain.WeeklyPlan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan %s: %w", plan.ID, err)
	}
	if err := r.kv.Set(ctx, planKey(plan.Year, plan.Week), string(raw)); err != nil {
		return fmt.Errorf("failed to save plan %s: %w", plan.ID, err)
	}
	return nil
}
