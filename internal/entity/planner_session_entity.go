package entity

import (
	"sync"
	"sync/atomic"
	"time"

	"trip-planner-be/pkg/reconcile"

	"github.com/google/uuid"
)

// PlannerSession is one generated itinerary and the selections made against it.
type PlannerSession struct {
	Id        uuid.UUID
	CreatedAt time.Time
	Engine    *reconcile.Engine

	mu        sync.RWMutex
	prompt    string
	updatedAt time.Time

	generating atomic.Bool
}

func NewPlannerSession(prompt string, engine *reconcile.Engine) *PlannerSession {
	now := time.Now().UTC()
	return &PlannerSession{
		Id:        uuid.New(),
		CreatedAt: now,
		Engine:    engine,
		prompt:    prompt,
		updatedAt: now,
	}
}

func (s *PlannerSession) Prompt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prompt
}

func (s *PlannerSession) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Touch records a state change. A non-empty prompt replaces the stored one.
func (s *PlannerSession) Touch(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prompt != "" {
		s.prompt = prompt
	}
	s.updatedAt = time.Now().UTC()
}

// BeginGeneration reports false if another generation already holds the session.
func (s *PlannerSession) BeginGeneration() bool {
	return s.generating.CompareAndSwap(false, true)
}

func (s *PlannerSession) EndGeneration() {
	s.generating.Store(false)
}
