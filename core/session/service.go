package session

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/hudhura/core"
)

var (
	// errors
	ErrNoSession          = errors.New("no stored session")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type (
	// TokenStore persists the two session secrets in secure on-device
	// storage. Load returns ErrNoSession when no access token is stored.
	// Clear is idempotent. Implementations live under storage/.
	TokenStore interface {
		Save(access, refresh string) error
		Load() (Session, error)
		Clear() error
	}

	// Client is the slice of the API client this service needs.
	Client interface {
		Get(ctx context.Context, path string, into interface{}) error
		Post(ctx context.Context, path string, body, into interface{}) error
	}

	// Service owns the auth state: it is the single writer, screens and the
	// navigation shell only read. All calls happen on the UI goroutine.
	Service struct {
		store  TokenStore
		client Client
		log    core.Logger

		state   State
		profile Profile
	}
)

type loginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func NewService(store TokenStore, client Client, log core.Logger) *Service {
	return &Service{
		store:  store,
		client: client,
		log:    log,
		state:  StateLoading,
	}
}

func (svc *Service) State() State     { return svc.state }
func (svc *Service) Profile() Profile { return svc.profile }
func (svc *Service) Role() Role       { return svc.profile.Role }

// CheckSession resolves the auth state. An absent token short-circuits to
// Unauthenticated without touching the network; a stored token is verified
// against `me/` and any failure there, auth rejection or transport alike,
// tears the session down.
func (svc *Service) CheckSession(ctx context.Context) error {
	if _, err := svc.store.Load(); err != nil {
		if errors.Cause(err) != ErrNoSession {
			svc.log.Warn("loading stored session", err)
		}
		svc.setUnauthenticated()
		return nil
	}

	var profile Profile
	if err := svc.client.Get(ctx, "me/", &profile); err != nil {
		svc.log.Info("session check failed, logging out", err)
		return svc.Logout()
	}
	svc.state = StateAuthenticated
	svc.profile = profile
	return nil
}

// Login exchanges credentials for tokens, persists them and re-runs
// CheckSession so the role always comes from `me/`, never from the login
// response. A rejected login mutates nothing.
func (svc *Service) Login(ctx context.Context, creds Credentials) error {
	if err := creds.Validate(core.Validate); err != nil {
		return err
	}

	var tokens loginResponse
	if err := svc.client.Post(ctx, "login/", creds, &tokens); err != nil {
		if apiErr, ok := core.AsAPIError(err); ok && apiErr.StatusCode < 500 {
			return ErrInvalidCredentials
		}
		return errors.Wrap(err, "posting credentials")
	}
	if err := svc.store.Save(tokens.Access, tokens.Refresh); err != nil {
		return errors.Wrap(err, "persisting session")
	}
	return svc.CheckSession(ctx)
}

// Logout clears the token store and resets the state. It succeeds even when
// nothing was stored.
func (svc *Service) Logout() error {
	err := svc.store.Clear()
	svc.setUnauthenticated()
	return errors.Wrap(err, "clearing token store")
}

func (svc *Service) setUnauthenticated() {
	svc.state = StateUnauthenticated
	svc.profile = Profile{}
}
