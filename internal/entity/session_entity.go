package entity

import "time"

// Session maps an opaque bearer token to the user that signed in with it.
// Sessions live in process memory only.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}
