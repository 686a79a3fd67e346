package model

import (
	"time"
)

type SessionState int

const (
	SessionPending SessionState = iota
	SessionConsumed
	SessionExpired
)

// VerificationSession binds a one-time verification token to a user for a
// bounded time window. Sessions only move forward: Pending -> Consumed or
// Pending -> Expired.
type VerificationSession struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	State     SessionState
}
