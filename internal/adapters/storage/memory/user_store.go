package memory

import (
	"sync"

	"github.com/trigenys/apex-forge/internal/domain"
)

// UserStore is the in-memory profile backend. SaveUser upserts, which
// matches the merge-by-field contract of the persistent backend.
type UserStore struct {
	mu    sync.RWMutex
	users map[domain.UserID]*domain.UserProfile
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[domain.UserID]*domain.UserProfile),
	}
}

func (s *UserStore) SaveUser(u *domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *u
	copied.Collaborators = append([]string(nil), u.Collaborators...)
	s.users[u.ID] = &copied
	return nil
}

func (s *UserStore) GetUser(id domain.UserID) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	copied := *u
	copied.Collaborators = append([]string(nil), u.Collaborators...)
	return &copied, nil
}
