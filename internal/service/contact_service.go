package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"cleverai/api/internal/models"
	"cleverai/api/internal/repository"
)

// ContactArchiver hands a stored submission to downstream processing.
type ContactArchiver interface {
	ArchiveContact(ctx context.Context, contact models.Contact) error
}

type ContactService struct {
	contacts repository.ContactRepository
	archiver ContactArchiver
	log      zerolog.Logger
}

// NewContactService accepts a nil archiver.
func NewContactService(contacts repository.ContactRepository, archiver ContactArchiver, log zerolog.Logger) *ContactService {
	return &ContactService{
		contacts: contacts,
		archiver: archiver,
		log:      log,
	}
}

type ContactInput struct {
	Name    string
	Email   string
	Company string
	Message string
}

func (s *ContactService) Submit(ctx context.Context, input ContactInput) (models.Contact, error) {
	in := models.NewContact{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Message: input.Message,
	}
	if company := strings.TrimSpace(input.Company); company != "" {
		in.Company = &company
	}

	contact, err := s.contacts.Create(ctx, in)
	if err != nil {
		return models.Contact{}, fmt.Errorf("store contact: %w", err)
	}

	s.log.Info().
		Int64("contact_id", contact.ID).
		Str("email", contact.Email).
		Msg("contact form submission")

	if s.archiver != nil {
		if err := s.archiver.ArchiveContact(ctx, contact); err != nil {
			s.log.Warn().Err(err).Int64("contact_id", contact.ID).Msg("archive contact failed")
		}
	}

	return contact, nil
}
