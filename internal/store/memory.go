package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/secure-profile-hub/internal/models"
)

// MemoryUserStore keeps users in process memory. Used for local development
// (STORE_DRIVER=memory) and tests.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}

	user.ID = uuid.NewString()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stored := *user
	s.byID[user.ID] = &stored
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	found := *s.byID[id]
	return &found, nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := *user
	return &found, nil
}

// Count returns the number of stored users.
func (s *MemoryUserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
