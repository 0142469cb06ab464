package repository

import (
	"context"
	"errors"

	"cleverai/api/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, user models.NewUser) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

type ContactRepository interface {
	Create(ctx context.Context, contact models.NewContact) (models.Contact, error)
}
