package planstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/goalplan/internal/domain"
)

type planKey struct {
	userID   string
	goalType domain.GoalType
}

// MemoryStore keeps plans in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[planKey]domain.SavedPlan
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		plans: make(map[planKey]domain.SavedPlan),
		now:   time.Now,
	}
}

// Load returns a copy of the stored plan
func (m *MemoryStore) Load(ctx context.Context, userID string, goalType domain.GoalType) (*domain.SavedPlan, error) {
	if err := checkKey(userID, goalType); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.plans[planKey{userID, goalType}]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	p.Input = p.Input.Clone()
	return &p, nil
}

// Save stores a copy of the input, keeping the plan id across updates
func (m *MemoryStore) Save(ctx context.Context, userID string, goalType domain.GoalType, in domain.GoalPlanInput) (*domain.SavedPlan, error) {
	if err := checkKey(userID, goalType); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := planKey{userID, goalType}
	p, ok := m.plans[key]
	if !ok {
		p = domain.SavedPlan{ID: uuid.New(), UserID: userID, GoalType: goalType}
	}
	in.GoalType = goalType
	p.Input = in.Clone()
	p.UpdatedAt = m.now().UTC()
	m.plans[key] = p

	out := p
	out.Input = p.Input.Clone()
	return &out, nil
}
