package models

import "time"

// Session is a server-side login session persisted in the database so
// logins survive process restarts. The id travels in a cookie.
type Session struct {
	ID         string
	UserID     int64
	ExpiresAt  time.Time
	LastSeenAt time.Time
}
