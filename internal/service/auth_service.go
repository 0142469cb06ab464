package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"cleverai/api/internal/models"
	"cleverai/api/internal/repository"
	"cleverai/api/internal/security"
	"cleverai/api/internal/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// PasswordHasher derives and checks stored password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) (bool, error)
}

type scryptHasher struct {
	params security.ScryptParams
}

func NewScryptHasher(params security.ScryptParams) PasswordHasher {
	return scryptHasher{params: params}
}

func (h scryptHasher) Hash(password string) (string, error) {
	return security.HashPasswordWithParams(password, h.params)
}

func (h scryptHasher) Verify(password, stored string) (bool, error) {
	return security.VerifyPasswordWithParams(password, stored, h.params)
}

type AuthService struct {
	users    repository.UserRepository
	sessions *session.Manager
	hasher   PasswordHasher
	log      zerolog.Logger

	// dummyHash is verified against when the email is unknown so both
	// login failure paths cost one key derivation.
	dummyHash string
}

func NewAuthService(
	users repository.UserRepository,
	sessions *session.Manager,
	hasher PasswordHasher,
	log zerolog.Logger,
) (*AuthService, error) {
	dummy, err := hasher.Hash("cleverai-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &AuthService{
		users:     users,
		sessions:  sessions,
		hasher:    hasher,
		log:       log,
		dummyHash: dummy,
	}, nil
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Email = normalizeEmail(input.Email)

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("find by username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("find by email: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, models.NewUser{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
	})
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		// lost a race with a concurrent registration
		return models.User{}, ErrUsernameTaken
	case errors.Is(err, repository.ErrEmailTaken):
		return models.User{}, ErrEmailTaken
	case err != nil:
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	User    models.User
	Session session.Session
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	email := normalizeEmail(input.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, fmt.Errorf("find by email: %w", err)
		}
		_, _ = s.hasher.Verify(input.Password, s.dummyHash)
		return LoginResult{}, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, security.ErrMalformedHash) {
			s.log.Error().Err(err).Int64("user_id", user.ID).Msg("stored password hash failed integrity check")
		}
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("create session: %w", err)
	}

	return LoginResult{User: user, Session: sess}, nil
}

// Logout succeeds when the session is already gone.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Invalidate(ctx, token)
}

func (s *AuthService) WhoAmI(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
