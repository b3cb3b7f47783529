package keyringstore

import (
	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"

	"github.com/trezcool/hudhura/core/session"
)

const (
	accessKey  = "access-token"
	refreshKey = "refresh-token"
)

// Store keeps the two session secrets in the OS keyring (Keychain, Secret
// Service, Credential Manager) under the app's service name. Nothing is ever
// written in plaintext outside the keyring.
type Store struct {
	service string
}

var _ session.TokenStore = (*Store)(nil) // interface compliance check

func NewStore(appName string) *Store {
	return &Store{service: appName}
}

func (s *Store) Save(access, refresh string) error {
	if err := keyring.Set(s.service, accessKey, access); err != nil {
		return errors.Wrap(err, "storing access token")
	}
	if err := keyring.Set(s.service, refreshKey, refresh); err != nil {
		// no partial writes: roll the access token back
		_ = keyring.Delete(s.service, accessKey)
		return errors.Wrap(err, "storing refresh token")
	}
	return nil
}

func (s *Store) Load() (session.Session, error) {
	access, err := keyring.Get(s.service, accessKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return session.Session{}, session.ErrNoSession
		}
		return session.Session{}, errors.Wrap(err, "loading access token")
	}
	refresh, err := keyring.Get(s.service, refreshKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return session.Session{}, errors.Wrap(err, "loading refresh token")
	}
	return session.Session{Access: access, Refresh: refresh}, nil
}

func (s *Store) Clear() error {
	for _, key := range []string{accessKey, refreshKey} {
		if err := keyring.Delete(s.service, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return errors.Wrapf(err, "deleting %s", key)
		}
	}
	return nil
}
