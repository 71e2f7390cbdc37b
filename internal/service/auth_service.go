package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"airport-assistant-be/internal/dto"
	"airport-assistant-be/internal/entity"
	"airport-assistant-be/internal/pkg/logger"
	"airport-assistant-be/internal/pkg/validation"
	"airport-assistant-be/internal/repository/contract"
	"airport-assistant-be/pkg/events"

	"github.com/google/uuid"
)

const moduleAuth = "AUTH"

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) error
	Signin(ctx context.Context, req *dto.SigninRequest) (*dto.SigninResponse, error)
	Profile(ctx context.Context, token string) (*dto.ProfileResponse, error)
	Signout(ctx context.Context, token string) error
}

type authService struct {
	users        contract.UserRepository
	sessions     contract.SessionRepository
	sessionTTL   time.Duration
	passwordCost int
	publisher    events.Publisher
	log          logger.ILogger
}

func NewAuthService(
	users contract.UserRepository,
	sessions contract.SessionRepository,
	sessionTTL time.Duration,
	passwordCost int,
	publisher events.Publisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		users:        users,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
		passwordCost: passwordCost,
		publisher:    publisher,
		log:          log,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := validation.Struct(req); err != nil {
		s.log.Debug(moduleAuth, "Signup rejected", map[string]interface{}{"missing": validation.FailedFields(err)})
		return ErrMissingFields
	}

	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	hash, err := hashPassword(req.Password, s.passwordCost)
	if err != nil {
		return err
	}

	err = s.users.Create(ctx, &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, contract.ErrUserExists) {
		// lost a race with a concurrent signup for the same name
		return ErrUsernameTaken
	}
	if err != nil {
		return err
	}

	s.log.Info(moduleAuth, "User signed up", map[string]interface{}{"username": req.Username})
	publishEvent(ctx, s.publisher, s.log, events.New(events.TypeUserSignup, map[string]interface{}{
		"username": req.Username,
	}))

	return nil
}

func (s *authService) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.SigninResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validation.Struct(req); err != nil {
		s.log.Debug(moduleAuth, "Signin rejected", map[string]interface{}{"missing": validation.FailedFields(err)})
		return nil, ErrMissingFields
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if user.NeedsRehash() {
		if !checkLegacyPassword(user.LegacyPasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
		s.upgradePassword(ctx, user, req.Password)
	} else if !checkPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.Session{
		Token:     token,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	publishEvent(ctx, s.publisher, s.log, events.New(events.TypeUserSignin, map[string]interface{}{
		"username": user.Username,
		"time":     now.Format(time.RFC822),
	}))

	return &dto.SigninResponse{
		Token: token,
		User: dto.UserDTO{
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

func (s *authService) Profile(ctx context.Context, token string) (*dto.ProfileResponse, error) {
	session, ok := s.sessions.Get(ctx, token)
	if !ok {
		return nil, ErrUnauthorized
	}

	user, err := s.users.FindByUsername(ctx, session.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	return &dto.ProfileResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (s *authService) Signout(ctx context.Context, token string) error {
	session, ok := s.sessions.Get(ctx, token)
	if !ok {
		return ErrUnauthorized
	}
	s.sessions.Delete(ctx, token)

	publishEvent(ctx, s.publisher, s.log, events.New(events.TypeUserSignout, map[string]interface{}{
		"username": session.Username,
	}))
	return nil
}

// upgradePassword swaps a legacy SHA-256 record for a bcrypt one. Failure is
// logged only; the user is already authenticated.
func (s *authService) upgradePassword(ctx context.Context, user *entity.User, password string) {
	hash, err := hashPassword(password, s.passwordCost)
	if err != nil {
		s.log.Warn(moduleAuth, "Failed to upgrade legacy password", map[string]interface{}{"username": user.Username, "error": err.Error()})
		return
	}

	upgraded := *user
	upgraded.PasswordHash = hash
	upgraded.LegacyPasswordHash = ""
	if err := s.users.Update(ctx, &upgraded); err != nil {
		s.log.Warn(moduleAuth, "Failed to upgrade legacy password", map[string]interface{}{"username": user.Username, "error": err.Error()})
		return
	}
	s.log.Info(moduleAuth, "Upgraded legacy password hash", map[string]interface{}{"username": user.Username})
}

// newSessionToken returns 64 hex chars drawn from two random (v4) UUIDs.
func newSessionToken() (string, error) {
	var sb strings.Builder
	for i := 0; i < 2; i++ {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("generate session token: %w", err)
		}
		sb.WriteString(strings.ReplaceAll(id.String(), "-", ""))
	}
	return sb.String(), nil
}
