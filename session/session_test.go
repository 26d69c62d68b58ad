// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/danielhkuo/foodshare/identity"
	"github.com/danielhkuo/foodshare/models"
	"github.com/danielhkuo/foodshare/store"
	"github.com/danielhkuo/foodshare/testutil"
)

// fakeProvider accepts every credential unless err is set
type fakeProvider struct {
	mu        sync.Mutex
	created   []string
	err       error
	verifyErr error
	verified  int
}

func (f *fakeProvider) CreateCredential(ctx context.Context, email, password string) (identity.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return identity.Principal{}, f.err
	}
	f.created = append(f.created, email)
	return identity.Principal{UID: "uid-" + email, Email: email}, nil
}

func (f *fakeProvider) VerifyCredential(ctx context.Context, email, password string) (identity.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verified++
	if f.verifyErr != nil {
		return identity.Principal{}, f.verifyErr
	}
	return identity.Principal{UID: "uid-" + email, Email: email}, nil
}

// createOnly has no VerifyCredential method
type createOnly struct{}

func (createOnly) CreateCredential(ctx context.Context, email, password string) (identity.Principal, error) {
	return identity.Principal{Email: email}, nil
}

func setupGate(t *testing.T, idp identity.Provider, verify bool) (*Gate, *store.Store) {
	t.Helper()
	st := store.New(testutil.SetupTestDB(t))
	return NewGate(st, idp, verify), st
}

func TestRegister(t *testing.T) {
	idp := &fakeProvider{}
	gate, st := setupGate(t, idp, false)
	ctx := context.Background()

	if err := gate.Register(ctx, "new@x.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if len(idp.created) != 1 || idp.created[0] != "new@x.com" {
		t.Errorf("expected provider account for new@x.com, got %v", idp.created)
	}

	// The local row exists but has no role
	_, found, err := st.GetUserRole(ctx, "new@x.com")
	if err != nil {
		t.Fatalf("GetUserRole() error = %v", err)
	}
	if found {
		t.Error("newly registered user should have no role")
	}
	if created, _ := st.CreateUser(ctx, "new@x.com", nil); created {
		t.Error("expected the local user row to exist already")
	}
}

func TestRegister_ProviderRejects(t *testing.T) {
	rejection := &identity.AuthError{Code: identity.CodeEmailExists, Message: identity.CodeEmailExists}
	gate, st := setupGate(t, &fakeProvider{err: rejection}, false)
	ctx := context.Background()

	err := gate.Register(ctx, "taken@x.com", "secret123")

	var regErr *RegistrationError
	if !errors.As(err, &regErr) {
		t.Fatalf("expected *RegistrationError, got %v", err)
	}
	var authErr *identity.AuthError
	if !errors.As(err, &authErr) || authErr.Code != identity.CodeEmailExists {
		t.Errorf("expected wrapped EMAIL_EXISTS, got %v", err)
	}

	// No local row is created
	if created, _ := st.CreateUser(ctx, "taken@x.com", nil); !created {
		t.Error("rejected registration should not create a local user")
	}
}

func TestRegister_ExistingLocalUser(t *testing.T) {
	gate, st := setupGate(t, &fakeProvider{}, false)
	ctx := context.Background()

	role := models.RoleDonor
	st.CreateUser(ctx, "old@x.com", &role)

	if err := gate.Register(ctx, "old@x.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, found, _ := st.GetUserRole(ctx, "old@x.com")
	if !found || got != models.RoleDonor {
		t.Errorf("existing role should be kept, got %q (found=%v)", got, found)
	}
}

func TestRegister_StorageFailure(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	gate := NewGate(store.New(conn), &fakeProvider{}, false)
	conn.Close()

	err := gate.Register(context.Background(), "a@x.com", "secret123")

	var storageErr *store.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected wrapped *store.StorageError, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	gate, st := setupGate(t, &fakeProvider{}, false)
	ctx := context.Background()

	role := models.RoleDonor
	st.CreateUser(ctx, "d@x.com", &role)

	// The password is not checked by default
	sess, err := gate.Login(ctx, "d@x.com", "anything")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.ID == "" || sess.Email != "d@x.com" || sess.Role != models.RoleDonor || !sess.LoggedIn {
		t.Errorf("unexpected session %+v", sess)
	}
	if sess.CreatedAt.IsZero() {
		t.Error("session should record its creation time")
	}

	got, ok := gate.Lookup(sess.ID)
	if !ok || got != sess {
		t.Errorf("Lookup() = %+v, %v", got, ok)
	}

	other, _ := gate.Login(ctx, "d@x.com", "anything")
	if other.ID == sess.ID {
		t.Error("each login should open a new session")
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	gate, st := setupGate(t, &fakeProvider{}, false)
	ctx := context.Background()

	st.CreateUser(ctx, "norole@x.com", nil)

	tests := []struct {
		name  string
		email string
	}{
		{"not in database", "ghost@x.com"},
		{"no role", "norole@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.Login(ctx, tt.email, "secret123")
			if !errors.Is(err, ErrUnknownUser) {
				t.Errorf("expected ErrUnknownUser, got %v", err)
			}
		})
	}
}

func TestRegisterThenLogin_NoRole(t *testing.T) {
	gate, _ := setupGate(t, identity.NewLocal(), false)
	ctx := context.Background()

	if err := gate.Register(ctx, "fresh@x.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := gate.Login(ctx, "fresh@x.com", "secret123"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("expected ErrUnknownUser until a role is assigned, got %v", err)
	}
}

func TestLogin_RoleAssignedLater(t *testing.T) {
	gate, st := setupGate(t, &fakeProvider{}, false)
	ctx := context.Background()

	gate.Register(ctx, "r@x.com", "secret123")
	st.UpdateUserRole(ctx, "r@x.com", models.RoleReceiver)

	sess, err := gate.Login(ctx, "r@x.com", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.Role != models.RoleReceiver {
		t.Errorf("Role = %q, want %q", sess.Role, models.RoleReceiver)
	}
}

func TestLogin_VerifyPasswords(t *testing.T) {
	rejection := &identity.AuthError{Code: identity.CodeInvalidCredentials, Message: identity.CodeInvalidCredentials}
	ctx := context.Background()

	t.Run("rejected password", func(t *testing.T) {
		idp := &fakeProvider{verifyErr: rejection}
		gate, st := setupGate(t, idp, true)
		role := models.RoleDonor
		st.CreateUser(ctx, "d@x.com", &role)

		_, err := gate.Login(ctx, "d@x.com", "wrong")
		var authErr *identity.AuthError
		if !errors.As(err, &authErr) || authErr.Code != identity.CodeInvalidCredentials {
			t.Errorf("expected INVALID_LOGIN_CREDENTIALS, got %v", err)
		}
	})

	t.Run("accepted password", func(t *testing.T) {
		idp := &fakeProvider{}
		gate, st := setupGate(t, idp, true)
		role := models.RoleDonor
		st.CreateUser(ctx, "d@x.com", &role)

		if _, err := gate.Login(ctx, "d@x.com", "right"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if idp.verified != 1 {
			t.Errorf("expected one verification, got %d", idp.verified)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		idp := &fakeProvider{verifyErr: rejection}
		gate, st := setupGate(t, idp, false)
		role := models.RoleDonor
		st.CreateUser(ctx, "d@x.com", &role)

		if _, err := gate.Login(ctx, "d@x.com", "wrong"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if idp.verified != 0 {
			t.Error("password should not be verified when disabled")
		}
	})

	t.Run("provider cannot verify", func(t *testing.T) {
		gate, st := setupGate(t, createOnly{}, true)
		role := models.RoleDonor
		st.CreateUser(ctx, "d@x.com", &role)

		if _, err := gate.Login(ctx, "d@x.com", "wrong"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
	})
}

func TestLogout(t *testing.T) {
	gate, st := setupGate(t, &fakeProvider{}, false)
	ctx := context.Background()

	role := models.RoleDonor
	st.CreateUser(ctx, "d@x.com", &role)
	sess, _ := gate.Login(ctx, "d@x.com", "secret123")

	gate.Logout(sess.ID)
	if _, ok := gate.Lookup(sess.ID); ok {
		t.Error("session should be gone after logout")
	}

	// Logging out twice or with an unknown id is a no-op
	gate.Logout(sess.ID)
	gate.Logout("unknown")
}

func TestConcurrentLogins(t *testing.T) {
	gate, st := setupGate(t, &fakeProvider{}, false)
	ctx := context.Background()

	role := models.RoleReceiver
	st.CreateUser(ctx, "r@x.com", &role)

	const n = 20
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := gate.Login(ctx, "r@x.com", "secret123")
			if err != nil {
				t.Errorf("Login() error = %v", err)
				return
			}
			ids <- sess.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate session id %s", id)
		}
		seen[id] = true
		if _, ok := gate.Lookup(id); !ok {
			t.Errorf("session %s not in registry", id)
		}
	}
	if len(seen) != n {
		t.Errorf("expected %d sessions, got %d", n, len(seen))
	}
}
