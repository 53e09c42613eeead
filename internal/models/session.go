package models

import "time"

// SessionToken is one issued login session. The token value is the primary
// key; a user may hold any number of live sessions at once. Rows are never
// deleted; expiry is checked when the token is presented, not swept.
type SessionToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s SessionToken) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
