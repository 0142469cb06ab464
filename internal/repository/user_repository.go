package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"cleverai/api/internal/models"
)

type PostgresUserRepository struct {
	db DBTX
}

func NewPostgresUserRepository(db DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, in models.NewUser) (models.User, error) {
	const query = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
	}
	row := r.db.QueryRow(ctx, query, in.Username, in.Email, in.PasswordHash)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		return models.User{}, mapUniqueViolation(err)
	}
	return user, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE id = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE email = $1
	`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
