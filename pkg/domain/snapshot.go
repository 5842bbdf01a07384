package domain

import "time"

// SessionSnapshot is a point-in-time copy of the session state.
type SessionSnapshot struct {
	Network   string    `json:"network" yaml:"network"`
	AccountID string    `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Authenticated reports whether the snapshot carries an account.
func (s SessionSnapshot) Authenticated() bool {
	return s.AccountID != ""
}
