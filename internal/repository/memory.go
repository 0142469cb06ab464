package repository

import (
	"context"
	"sync"
	"time"

	"cleverai/api/internal/models"
)

// MemoryStorage keeps users and contacts in process memory. Ids start at 1 per
// entity type. Nothing survives a restart.
type MemoryStorage struct {
	mu            sync.RWMutex
	users         map[int64]models.User
	contacts      map[int64]models.Contact
	nextUserID    int64
	nextContactID int64
	now           func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:         make(map[int64]models.User),
		contacts:      make(map[int64]models.Contact),
		nextUserID:    1,
		nextContactID: 1,
		now:           time.Now,
	}
}

func (s *MemoryStorage) Users() UserRepository {
	return memoryUsers{s}
}

func (s *MemoryStorage) Contacts() ContactRepository {
	return memoryContacts{s}
}

type memoryUsers struct {
	s *MemoryStorage
}

func (r memoryUsers) Create(_ context.Context, in models.NewUser) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == in.Username {
			return models.User{}, ErrUsernameTaken
		}
		if u.Email == in.Email {
			return models.User{}, ErrEmailTaken
		}
	}

	user := models.User{
		ID:           r.s.nextUserID,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		CreatedAt:    r.s.now().UTC(),
	}
	r.s.nextUserID++
	r.s.users[user.ID] = user
	return user, nil
}

func (r memoryUsers) GetByID(_ context.Context, id int64) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r memoryUsers) FindByUsername(_ context.Context, username string) (models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r memoryUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r memoryUsers) find(match func(models.User) bool) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

type memoryContacts struct {
	s *MemoryStorage
}

func (r memoryContacts) Create(_ context.Context, in models.NewContact) (models.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	contact := models.Contact{
		ID:        r.s.nextContactID,
		Name:      in.Name,
		Email:     in.Email,
		Company:   in.Company,
		Message:   in.Message,
		CreatedAt: r.s.now().UTC(),
	}
	r.s.nextContactID++
	r.s.contacts[contact.ID] = contact
	return contact, nil
}
