package session_test

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/hudhura/core"
	"github.com/trezcool/hudhura/core/session"
	logsvc "github.com/trezcool/hudhura/services/logger"
	inmemstore "github.com/trezcool/hudhura/storage/inmem"
)

type fakeClient struct {
	calls    []string
	getFunc  func(path string, into interface{}) error
	postFunc func(path string, body, into interface{}) error
}

func (c *fakeClient) Get(_ context.Context, path string, into interface{}) error {
	c.calls = append(c.calls, "GET "+path)
	return c.getFunc(path, into)
}

func (c *fakeClient) Post(_ context.Context, path string, body, into interface{}) error {
	c.calls = append(c.calls, "POST "+path)
	return c.postFunc(path, body, into)
}

func decodeInto(t *testing.T, obj, into interface{}) {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("decodeInto() failed: %v", err)
	}
	if err = json.Unmarshal(data, into); err != nil {
		t.Fatalf("decodeInto() failed: %v", err)
	}
}

func setup(store session.TokenStore, client session.Client) *session.Service {
	logger := logsvc.NewStdLogger(log.New(os.Stderr, "TEST : ", log.LstdFlags))
	return session.NewService(store, client, logger)
}

func TestService_CheckSession_emptyStore(t *testing.T) {
	client := &fakeClient{}
	svc := setup(inmemstore.NewStore(), client)

	if err := svc.CheckSession(context.Background()); err != nil {
		t.Fatalf("CheckSession() error = %v", err)
	}
	if got := svc.State(); got != session.StateUnauthenticated {
		t.Errorf("State() = %v, want %v", got, session.StateUnauthenticated)
	}
	if len(client.calls) != 0 {
		t.Errorf("CheckSession() hit the network without a stored token: %v", client.calls)
	}
}

func TestService_CheckSession_validToken(t *testing.T) {
	profile := session.Profile{ID: 7, Username: "awe", FirstName: "Hassan", LastName: "Juma", Role: session.RoleStudent}
	client := &fakeClient{
		getFunc: func(path string, into interface{}) error {
			if path != "me/" {
				t.Errorf("Get() path = %s, want me/", path)
			}
			decodeInto(t, profile, into)
			return nil
		},
	}
	svc := setup(inmemstore.NewStoreWith("acc", "ref"), client)

	if err := svc.CheckSession(context.Background()); err != nil {
		t.Fatalf("CheckSession() error = %v", err)
	}
	if got := svc.State(); got != session.StateAuthenticated {
		t.Errorf("State() = %v, want %v", got, session.StateAuthenticated)
	}
	if got := svc.Role(); got != session.RoleStudent {
		t.Errorf("Role() = %v, want %v", got, session.RoleStudent)
	}
	if got := svc.Profile().FullName(); got != "Hassan Juma" {
		t.Errorf("Profile().FullName() = %s", got)
	}
}

func TestService_CheckSession_rejectedToken(t *testing.T) {
	client := &fakeClient{
		getFunc: func(path string, into interface{}) error {
			return core.NewAPIError(401, "token expired")
		},
	}
	store := inmemstore.NewStoreWith("stale", "ref")
	svc := setup(store, client)

	if err := svc.CheckSession(context.Background()); err != nil {
		t.Fatalf("CheckSession() error = %v", err)
	}
	if got := svc.State(); got != session.StateUnauthenticated {
		t.Errorf("State() = %v, want %v", got, session.StateUnauthenticated)
	}
	if _, err := store.Load(); errors.Cause(err) != session.ErrNoSession {
		t.Errorf("store not cleared after rejected token; Load() error = %v", err)
	}

	// a second resolution settles without the network
	client.calls = nil
	if err := svc.CheckSession(context.Background()); err != nil {
		t.Fatalf("CheckSession() error = %v", err)
	}
	if len(client.calls) != 0 {
		t.Errorf("CheckSession() hit the network after teardown: %v", client.calls)
	}
}

func TestService_Login(t *testing.T) {
	profile := session.Profile{ID: 3, Username: "awe", Role: session.RoleTeacher}
	client := &fakeClient{
		postFunc: func(path string, body, into interface{}) error {
			if path != "login/" {
				t.Errorf("Post() path = %s, want login/", path)
			}
			decodeInto(t, map[string]string{"access": "acc", "refresh": "ref"}, into)
			return nil
		},
		getFunc: func(path string, into interface{}) error {
			decodeInto(t, profile, into)
			return nil
		},
	}
	store := inmemstore.NewStore()
	svc := setup(store, client)

	err := svc.Login(context.Background(), session.Credentials{Username: " awe ", Password: "mdr"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if sess.Access != "acc" || sess.Refresh != "ref" {
		t.Errorf("stored session = %+v", sess)
	}
	// the role comes from me/, not from the login response
	if got := svc.Role(); got != session.RoleTeacher {
		t.Errorf("Role() = %v, want %v", got, session.RoleTeacher)
	}
	want := []string{"POST login/", "GET me/"}
	if len(client.calls) != 2 || client.calls[0] != want[0] || client.calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", client.calls, want)
	}
}

func TestService_Login_rejected(t *testing.T) {
	client := &fakeClient{
		postFunc: func(path string, body, into interface{}) error {
			return core.NewAPIError(400, "No active account found with the given credentials")
		},
	}
	store := inmemstore.NewStore()
	svc := setup(store, client)

	err := svc.Login(context.Background(), session.Credentials{Username: "awe", Password: "nope"})
	if errors.Cause(err) != session.ErrInvalidCredentials {
		t.Fatalf("Login() error = %v, want %v", err, session.ErrInvalidCredentials)
	}
	if _, err = store.Load(); errors.Cause(err) != session.ErrNoSession {
		t.Errorf("rejected login mutated the store; Load() error = %v", err)
	}
	if got := svc.State(); got != session.StateLoading {
		t.Errorf("State() = %v, want %v", got, session.StateLoading)
	}
}

func TestService_Login_validation(t *testing.T) {
	tests := []struct {
		name  string
		creds session.Credentials
	}{
		{name: "empty credentials", creds: session.Credentials{}},
		{name: "missing password", creds: session.Credentials{Username: "awe"}},
		{name: "punctuated username", creds: session.Credentials{Username: "awe!?", Password: "mdr"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			svc := setup(inmemstore.NewStore(), client)

			err := svc.Login(context.Background(), tt.creds)
			if _, ok := errors.Cause(err).(validator.ValidationErrors); !ok {
				t.Fatalf("Login() error = %v, want validator.ValidationErrors", err)
			}
			if len(client.calls) != 0 {
				t.Errorf("Login() hit the network with invalid credentials: %v", client.calls)
			}
		})
	}
}

func TestService_Logout_idempotent(t *testing.T) {
	svc := setup(inmemstore.NewStore(), &fakeClient{})

	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if err := svc.Logout(); err != nil {
		t.Fatalf("second Logout() error = %v", err)
	}
	if got := svc.State(); got != session.StateUnauthenticated {
		t.Errorf("State() = %v, want %v", got, session.StateUnauthenticated)
	}
}
