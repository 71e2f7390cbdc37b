package memory

import (
	"context"
	"time"

	"airport-assistant-be/internal/entity"
	"airport-assistant-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository keeps sessions without an ExpiresAt for ttl and purges
// expired items every ttl/4, capped at 10 minutes.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	cleanup := ttl / 4
	if cleanup <= 0 || cleanup > 10*time.Minute {
		cleanup = 10 * time.Minute
	}
	return &SessionRepository{
		cache: cache.New(ttl, cleanup),
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	expiry := cache.DefaultExpiration
	if !session.ExpiresAt.IsZero() {
		expiry = time.Until(session.ExpiresAt)
		if expiry <= 0 {
			return nil
		}
	}
	r.cache.Set(session.Token, session, expiry)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, token string) (*entity.Session, bool) {
	if token == "" {
		return nil, false
	}
	if x, found := r.cache.Get(token); found {
		return x.(*entity.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(ctx context.Context, token string) {
	r.cache.Delete(token)
}
