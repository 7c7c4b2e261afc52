package service

import "time"

const (
	DefaultSessionInactivityTimeout = 15 * time.Minute
	DefaultSessionMaxDuration       = 4 * time.Hour
)

// SessionPolicy decides when the current session has ended. Expiry is
// evaluated while processing the next command; there is no background timer.
type SessionPolicy struct {
	InactivityTimeout time.Duration
	MaxDuration       time.Duration
}

func DefaultSessionPolicy() SessionPolicy {
	return SessionPolicy{
		InactivityTimeout: DefaultSessionInactivityTimeout,
		MaxDuration:       DefaultSessionMaxDuration,
	}
}

func (p SessionPolicy) Expired(startTime time.Time, lastActivity time.Time, now time.Time) bool {
	if lastActivity.IsZero() {
		lastActivity = startTime
	}
	if p.InactivityTimeout > 0 && now.Sub(lastActivity) >= p.InactivityTimeout {
		return true
	}
	if p.MaxDuration > 0 && now.Sub(startTime) >= p.MaxDuration {
		return true
	}
	return false
}
