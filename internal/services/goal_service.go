package services

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// GoalService owns budget goal writes, including recurring propagation.
// Stored rows are always concrete (category, year, month) triples; the
// recurring flag only drives the write-time expansion.
type GoalService struct {
	store store.GoalStore
}

func NewGoalService(st store.GoalStore) *GoalService {
	return &GoalService{store: st}
}

// SetGoal upserts the goal for its month. A recurring goal is copied into
// every later month of the same year. Setting a non-recurring goal clears
// any previously propagated months after it, so a recurring goal switched
// off stops at its own month.
func (s *GoalService) SetGoal(ctx context.Context, owner store.Principal, g core.BudgetGoal) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("validate goal: %w", err)
	}

	if err := s.store.UpsertGoal(ctx, owner, g); err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}

	for month := g.Month + 1; month <= 12; month++ {
		if g.IsRecurring {
			next := g
			next.Month = month
			if err := s.store.UpsertGoal(ctx, owner, next); err != nil {
				return fmt.Errorf("propagate goal to month %d: %w", month, err)
			}
			continue
		}
		err := s.store.DeleteGoal(ctx, owner, g.Category, g.Year, month)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("clear goal for month %d: %w", month, err)
		}
	}
	return nil
}

// ListGoals returns the principal's concrete goals for one year.
func (s *GoalService) ListGoals(ctx context.Context, owner store.Principal, year int) ([]core.BudgetGoal, error) {
	goals, err := s.store.ListGoals(ctx, owner, year)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// DeleteGoal removes a single month's goal.
func (s *GoalService) DeleteGoal(ctx context.Context, owner store.Principal, category core.Category, year, month int) error {
	if err := s.store.DeleteGoal(ctx, owner, category, year, month); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}
