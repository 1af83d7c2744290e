// Package payment provides Stripe integration for paid activity joins.
package payment

import "time"

// Payment record statuses.
const (
	StatusPending   = "pending"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusCanceled  = "canceled"
)

// Record is a provisional payment record for a paid activity join. The
// join is applied optimistically; the record stays pending until the
// payment provider confirms, and a failure rolls the join back.
type Record struct {
	ID         string     `json:"id"`
	ActivityID string     `json:"activity_id"`
	SessionID  string     `json:"session_id,omitempty"` // Stripe Checkout Session ID
	Status     string     `json:"status"`               // pending, succeeded, failed, canceled
	Amount     int64      `json:"amount"`               // amount in paise
	Currency   string     `json:"currency"`             // ISO currency code, e.g. "inr"
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// Terminal reports whether the record has reached a final status.
func (r *Record) Terminal() bool {
	switch r.Status {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}
