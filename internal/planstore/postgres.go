package planstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rgehrsitz/goalplan/internal/domain"
)

// Schema creates the plan table
const Schema = `
CREATE TABLE IF NOT EXISTS goal_plans (
	id         UUID PRIMARY KEY,
	user_id    TEXT NOT NULL,
	goal_type  TEXT NOT NULL,
	input      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, goal_type)
)`

const (
	selectPlanSQL = `
SELECT id, input, updated_at
FROM goal_plans
WHERE user_id = $1 AND goal_type = $2`

	upsertPlanSQL = `
INSERT INTO goal_plans (id, user_id, goal_type, input, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (user_id, goal_type)
DO UPDATE SET input = EXCLUDED.input, updated_at = now()
RETURNING id, updated_at`
)

// Querier is the subset of pgxpool.Pool the store uses
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps plans in a goal_plans table as JSONB
type PostgresStore struct {
	db Querier
}

// NewPostgresStore creates a store over a pool or connection
func NewPostgresStore(db Querier) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the table if it does not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create goal_plans table: %w", err)
	}
	return nil
}

// Load reads a plan
func (s *PostgresStore) Load(ctx context.Context, userID string, goalType domain.GoalType) (*domain.SavedPlan, error) {
	if err := checkKey(userID, goalType); err != nil {
		return nil, err
	}

	var (
		id        uuid.UUID
		raw       []byte
		updatedAt time.Time
	)
	err := s.db.QueryRow(ctx, selectPlanSQL, userID, string(goalType)).Scan(&id, &raw, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}

	plan := &domain.SavedPlan{ID: id, UserID: userID, GoalType: goalType, UpdatedAt: updatedAt}
	if err := json.Unmarshal(raw, &plan.Input); err != nil {
		return nil, fmt.Errorf("failed to decode stored plan: %w", err)
	}
	return plan, nil
}

// Save inserts or replaces a plan
func (s *PostgresStore) Save(ctx context.Context, userID string, goalType domain.GoalType, in domain.GoalPlanInput) (*domain.SavedPlan, error) {
	if err := checkKey(userID, goalType); err != nil {
		return nil, err
	}
	in.GoalType = goalType
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}

	plan := &domain.SavedPlan{UserID: userID, GoalType: goalType, Input: in}
	err = s.db.QueryRow(ctx, upsertPlanSQL, uuid.New(), userID, string(goalType), raw).
		Scan(&plan.ID, &plan.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	return plan, nil
}
