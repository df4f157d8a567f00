package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rondasapi/internal/auth"
	"rondasapi/internal/logging"
	"rondasapi/internal/model"
	"rondasapi/internal/repository"
)

// LoginInput carries the credentials and the client that sent them.
type LoginInput struct {
	Email     string
	Password  string
	IP        string
	UserAgent string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// RegisterInput creates an account. Accounts created through the API start
// unapproved; the CLI may create them approved.
type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	IsAdmin      bool
	IsSupervisor bool
	IsApproved   bool
}

// AuthService handles accounts, logins and bearer tokens.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	// Authenticate resolves a bearer token to an approved user.
	Authenticate(ctx context.Context, token string) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Approve(ctx context.Context, email string) error
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenIssuer
	log    *logging.Logger
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenIssuer, log *logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{users: users, tokens: tokens, log: log, now: time.Now}
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, invalid("email e senha são obrigatórios")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.record(ctx, nil, in, false, "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		s.record(ctx, &u.ID, in, false, "invalid_password")
		return nil, ErrInvalidCredentials
	}
	if !u.IsApproved {
		s.record(ctx, &u.ID, in, false, "not_approved")
		return nil, ErrNotApproved
	}

	token, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLogin = &now
	s.record(ctx, &u.ID, in, true, "")
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// record writes the login_history row. Failing to record never blocks a login.
func (s *authService) record(ctx context.Context, userID *int64, in LoginInput, success bool, reason string) {
	err := s.users.RecordLogin(ctx, &model.LoginAttempt{
		UserID:         userID,
		AttemptedEmail: strings.TrimSpace(in.Email),
		Success:        success,
		IPAddress:      in.IP,
		UserAgent:      in.UserAgent,
		FailureReason:  reason,
	})
	if err != nil {
		s.log.Warn(map[string]any{"event": "login_history_failed", "error": err})
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" {
		return nil, invalid("username e email são obrigatórios")
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, invalid("%v", err)
		}
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return s.users.Create(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
		IsSupervisor: in.IsSupervisor,
		IsApproved:   in.IsApproved,
		CreatedAt:    s.now().UTC(),
	})
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !u.IsApproved {
		return nil, ErrNotApproved
	}
	return u, nil
}

func (s *authService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "usuário")
	}
	return u, nil
}

func (s *authService) Approve(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email é obrigatório")
	}
	return notFound(s.users.SetApproved(ctx, email, true), "usuário")
}
