package models

import "time"

// LoginAttempt is one immutable entry of the authentication ledger. Entries
// are keyed by e-mail so that attempts against unknown accounts are counted
// the same way as attempts against existing ones.
type LoginAttempt struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}
