package common

import "time"

// Keys of the two values kept in local durable storage.
const (
	SessionTokenKey     = "session_token"
	SessionExpiresAtKey = "session_expires_at"
)

// SessionValidity is the fixed offset between session creation and expiry.
const SessionValidity = 72 * time.Hour

// DefaultTransactionLimit bounds transaction listings when the caller passes no limit.
const DefaultTransactionLimit = 50
