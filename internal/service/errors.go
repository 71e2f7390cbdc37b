package service

import (
	"errors"
	"fmt"

	"airport-assistant-be/internal/constant"
)

var (
	ErrMissingQuery       = errors.New(constant.MessageEnterQuestion)
	ErrNotConfigured      = errors.New(constant.MessageNotConfigured)
	ErrServiceUnavailable = errors.New(constant.MessageServiceUnavailable)

	ErrMissingFields      = errors.New(constant.MessageAllFieldsRequired)
	ErrUsernameTaken      = errors.New(constant.MessageUsernameExists)
	ErrInvalidCredentials = errors.New(constant.MessageInvalidCredentials)
	ErrUnauthorized       = errors.New(constant.MessageUnauthorized)
)

// UpstreamError wraps any provider failure that is not quota exhaustion.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream AI request failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PublicMessage is the kind-level text of err with no upstream detail attached.
func PublicMessage(err error) string {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return "upstream AI request failed"
	}
	for _, kind := range []error{ErrNotConfigured, ErrServiceUnavailable, ErrMissingQuery} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "internal error"
}
