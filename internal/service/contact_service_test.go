package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleverai/api/internal/models"
	"cleverai/api/internal/repository"
)

type fakeArchiver struct {
	archived []models.Contact
	err      error
}

func (f *fakeArchiver) ArchiveContact(_ context.Context, c models.Contact) error {
	f.archived = append(f.archived, c)
	return f.err
}

func TestContactSubmit(t *testing.T) {
	contacts := repository.NewMemoryStorage().Contacts()
	archiver := &fakeArchiver{}
	svc := NewContactService(contacts, archiver, zerolog.Nop())

	contact, err := svc.Submit(context.Background(), ContactInput{
		Name:    "Jo",
		Email:   "jo@x.com",
		Company: "  ",
		Message: "I would like a demo please",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), contact.ID)
	assert.Nil(t, contact.Company)
	require.Len(t, archiver.archived, 1)
	assert.Equal(t, contact, archiver.archived[0])
}

func TestContactSubmitArchiveFailureIsNotFatal(t *testing.T) {
	contacts := repository.NewMemoryStorage().Contacts()
	svc := NewContactService(contacts, &fakeArchiver{err: errors.New("bucket gone")}, zerolog.Nop())

	contact, err := svc.Submit(context.Background(), ContactInput{
		Name:    "Jo",
		Email:   "jo@x.com",
		Company: "Acme",
		Message: "I would like a demo please",
	})
	require.NoError(t, err)
	require.NotNil(t, contact.Company)
	assert.Equal(t, "Acme", *contact.Company)
}

func TestContactSubmitWithoutArchiver(t *testing.T) {
	svc := NewContactService(repository.NewMemoryStorage().Contacts(), nil, zerolog.Nop())

	_, err := svc.Submit(context.Background(), ContactInput{Name: "Jo", Email: "jo@x.com", Message: "I would like a demo please"})
	require.NoError(t, err)
}
