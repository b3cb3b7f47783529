package inmemstore

import (
	"sync"

	"github.com/trezcool/hudhura/core/session"
)

// Store is an in-memory token store for tests.
type Store struct {
	mu   sync.Mutex
	sess *session.Session

	// fault injection
	SaveErr  error
	LoadErr  error
	ClearErr error
}

var _ session.TokenStore = (*Store)(nil) // interface compliance check

func NewStore() *Store { return &Store{} }

// NewStoreWith returns a store pre-seeded with a session.
func NewStoreWith(access, refresh string) *Store {
	return &Store{sess: &session.Session{Access: access, Refresh: refresh}}
}

func (s *Store) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.sess = &session.Session{Access: access, Refresh: refresh}
	return nil
}

func (s *Store) Load() (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return session.Session{}, s.LoadErr
	}
	if s.sess == nil {
		return session.Session{}, session.ErrNoSession
	}
	return *s.sess, nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.sess = nil
	return nil
}
