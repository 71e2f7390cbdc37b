package contract

import (
	"context"

	"airport-assistant-be/internal/entity"
)

type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	// Get reports false for unknown, expired and revoked tokens alike.
	Get(ctx context.Context, token string) (*entity.Session, bool)
	Delete(ctx context.Context, token string)
}
