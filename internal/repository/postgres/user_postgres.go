package postgres

import (
	"context"
	"database/sql"
	"time"

	"rondasapi/internal/model"
	"rondasapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, username, email, password_hash, is_admin, is_supervisor, is_approved, last_login, created_at`

func scanUser(s scanner) (*model.User, error) {
	var u model.User
	if err := s.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.IsSupervisor,
		&u.IsApproved,
		&u.LastLogin,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (username, email, password_hash, is_admin, is_supervisor, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
		u.IsSupervisor,
		u.IsApproved,
	)
	return scanUser(row)
}

func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (r *UserPostgres) FindByID(ctx context.Context, id int64) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserPostgres) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	return err
}

func (r *UserPostgres) SetApproved(ctx context.Context, email string, approved bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_approved = $2 WHERE lower(email) = lower($1)`, email, approved)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserPostgres) RecordLogin(ctx context.Context, a *model.LoginAttempt) error {
	const q = `
		INSERT INTO login_history (user_id, attempted_email, success, ip_address, user_agent, failure_reason)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, q,
		a.UserID,
		a.AttemptedEmail,
		a.Success,
		a.IPAddress,
		a.UserAgent,
		a.FailureReason,
	)
	return err
}
