package entity

import "time"

// Session represents a server-side authentication session. The ID is the
// opaque value carried in the client's session cookie.
type Session struct {
	ID        string    // Session token (64-character hex string)
	UserID    uint      // Associated user ID
	UserAgent string    // Client's User-Agent header
	IPAddress string    // Client's IP address
	CreatedAt time.Time // Session creation time
	ExpiresAt time.Time // Session expiration time
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
