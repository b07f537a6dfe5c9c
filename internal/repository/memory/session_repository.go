package memory

import (
	"time"

	"trip-planner-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps planner sessions in process memory. Every Save
// restarts the session's expiry.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	// Purge expired items every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *entity.PlannerSession) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID uuid.UUID) (*entity.PlannerSession, bool) {
	if x, found := r.cache.Get(sessionID.String()); found {
		return x.(*entity.PlannerSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID uuid.UUID) bool {
	if _, found := r.cache.Get(sessionID.String()); !found {
		return false
	}
	r.cache.Delete(sessionID.String())
	return true
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
