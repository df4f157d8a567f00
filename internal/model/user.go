package model

import "time"

// User is an operator account. PasswordHash never leaves the server.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	IsAdmin      bool       `json:"is_admin"`
	IsSupervisor bool       `json:"is_supervisor"`
	IsApproved   bool       `json:"is_approved"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CanSupervise reports whether the user may act as a supervisor.
func (u User) CanSupervise() bool {
	return u.IsAdmin || u.IsSupervisor
}

// LoginAttempt is one row of login_history, successful or not.
type LoginAttempt struct {
	ID             int64     `json:"id"`
	UserID         *int64    `json:"user_id,omitempty"`
	AttemptedEmail string    `json:"attempted_email"`
	Success        bool      `json:"success"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
