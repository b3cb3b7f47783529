package filestore

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/trezcool/hudhura/core/session"
)

// Store is the fallback token store for hosts without a usable OS keyring
// (headless boxes, containers). The session is sealed with XChaCha20-Poly1305
// under a key derived from a machine-local secret via scrypt and written to a
// single file with owner-only permissions.
type Store struct {
	path string
	key  []byte
}

var _ session.TokenStore = (*Store)(nil) // interface compliance check

const (
	fileName = "session"
	saltName = "session.salt"
	saltLen  = 16
)

func NewStore(dataDir, secret string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	salt, err := loadOrCreateSalt(filepath.Join(dataDir, saltName))
	if err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(secret), salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
	if err != nil {
		return nil, errors.Wrap(err, "deriving file key")
	}
	return &Store{path: filepath.Join(dataDir, fileName), key: key}, nil
}

func loadOrCreateSalt(path string) ([]byte, error) {
	salt, err := os.ReadFile(path)
	if err == nil && len(salt) == saltLen {
		return salt, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "reading salt")
	}
	salt = make([]byte, saltLen)
	if _, err = rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "generating salt")
	}
	if err = os.WriteFile(path, salt, 0o600); err != nil {
		return nil, errors.Wrap(err, "writing salt")
	}
	return salt, nil
}

func (s *Store) Save(access, refresh string) error {
	plain, err := json.Marshal(session.Session{Access: access, Refresh: refresh})
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return errors.Wrap(err, "creating cipher")
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return errors.Wrap(err, "generating nonce")
	}
	sealed := aead.Seal(nonce, nonce, plain, nil)
	return errors.Wrap(os.WriteFile(s.path, sealed, 0o600), "writing session file")
}

func (s *Store) Load() (session.Session, error) {
	sealed, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Session{}, session.ErrNoSession
		}
		return session.Session{}, errors.Wrap(err, "reading session file")
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return session.Session{}, errors.Wrap(err, "creating cipher")
	}
	if len(sealed) < aead.NonceSize() {
		return session.Session{}, session.ErrNoSession
	}
	nonce, box := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, box, nil)
	if err != nil {
		// tampered or re-keyed file; treat as signed out
		return session.Session{}, session.ErrNoSession
	}
	var sess session.Session
	if err = json.Unmarshal(plain, &sess); err != nil {
		return session.Session{}, errors.Wrap(err, "decoding session")
	}
	return sess, nil
}

func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session file")
	}
	return nil
}
