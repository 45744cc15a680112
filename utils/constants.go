package utils

import (
	"time"
)

// Redis key constants
const (
	// AdminAccountKey is the hash holding the singleton administrator credentials
	AdminAccountKey = "admin:account"

	// UserCounterKey is the atomic counter that allocates student ids
	UserCounterKey = "users:count"

	// UserKeyPrefix prefixes the per-student hash keys (user:<id>)
	UserKeyPrefix = "user:"

	// EmailIndexKey maps normalized email -> student id for O(1) duplicate checks
	EmailIndexKey = "users:emails"
)

// Session constants
const (
	// SessionCookieName is the cookie carrying the signed admin session token
	SessionCookieName = "admin_session"

	// SessionTTL is the default lifetime of an admin session (24 hours)
	SessionTTL = 24 * time.Hour
)

// Broadcast constants
const (
	// NamePlaceholder is the token substituted with each student's name
	NamePlaceholder = "{{Student_name}}"

	// BroadcastSubject is the fixed subject line of broadcast emails
	BroadcastSubject = "New Announcement"
)
