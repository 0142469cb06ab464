package repository

import (
	"context"

	"cleverai/api/internal/models"
)

type PostgresContactRepository struct {
	db DBTX
}

func NewPostgresContactRepository(db DBTX) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) Create(ctx context.Context, in models.NewContact) (models.Contact, error) {
	const query = `
		INSERT INTO contacts (name, email, company, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	contact := models.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Company: in.Company,
		Message: in.Message,
	}
	row := r.db.QueryRow(ctx, query, in.Name, in.Email, in.Company, in.Message)
	if err := row.Scan(&contact.ID, &contact.CreatedAt); err != nil {
		return models.Contact{}, err
	}
	return contact, nil
}
