package repository

import (
	"context"
	"time"

	"rondasapi/internal/model"
)

// UserRepository persists accounts and their login history.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// FindByEmail matches case-insensitively; sql.ErrNoRows when missing.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	// SetApproved returns sql.ErrNoRows when no account has that email.
	SetApproved(ctx context.Context, email string, approved bool) error
	RecordLogin(ctx context.Context, a *model.LoginAttempt) error
}
