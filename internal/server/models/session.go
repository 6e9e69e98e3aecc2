package models

import "time"

// Session is one live token of a user. A user may hold several at once
// (one per device/login); deleting the row is the revocation mechanism.
type Session struct {
	UserID    string
	Access    string
	Token     string
	CreatedAt time.Time
}
