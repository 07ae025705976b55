package session

import "time"

// Result is returned by operations that open a session.
type Result struct {
	Token     string
	ExpiresAt time.Time
	Session   *Session
}
