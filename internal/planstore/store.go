// Package planstore persists goal plan inputs keyed by an opaque user id and
// goal type. The calculation core never touches it; the CLI and HTTP server
// use it to load and save plans.
package planstore

import (
	"context"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// Store loads and saves one plan per user and goal type.
// Load returns domain.ErrPlanNotFound when nothing is stored.
type Store interface {
	Load(ctx context.Context, userID string, goalType domain.GoalType) (*domain.SavedPlan, error)
	Save(ctx context.Context, userID string, goalType domain.GoalType, in domain.GoalPlanInput) (*domain.SavedPlan, error)
}

func checkKey(userID string, goalType domain.GoalType) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}
	if _, err := domain.ParseGoalType(string(goalType)); err != nil {
		return err
	}
	return nil
}
