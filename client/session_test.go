package client

import (
	"encoding/base64"
	"testing"
)

func newTestSession(t *testing.T, store Store) *Session {
	t.Helper()
	backend := newFakeBackend(t)
	demo := NewDemoProvider(store)
	demo.delay = 0
	return New(Config{
		Store:  store,
		Demo:   demo,
		Remote: NewRemoteProvider(backend.URL, store),
	})
}

func TestSessionRestore(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		s := newTestSession(t, NewMemory())
		if s.IsAuthenticated() || s.User() != nil {
			t.Error("fresh session must be signed out")
		}
		if s.IsLoading() {
			t.Error("loading must be false after New returns")
		}
	})

	t.Run("demo session survives restart", func(t *testing.T) {
		store := NewMemory()
		store.Set(TokenKey, "mock_"+base64.StdEncoding.EncodeToString([]byte("admin@imsop.io")))
		store.Set(DemoUserKey, `{"id":"1","email":"admin@imsop.io","name":"Admin User","role":"admin"}`)

		s := newTestSession(t, store)
		if !s.IsAuthenticated() || s.User().Role != "admin" {
			t.Fatalf("user = %+v, want restored admin", s.User())
		}
	})

	t.Run("remote session survives restart", func(t *testing.T) {
		store := NewMemory()
		store.Set(TokenKey, "jwt-token-1")
		store.Set(RemoteUserKey, `{"id":"u-1","email":"user@example.com","name":"Real User","role":"user"}`)

		s := newTestSession(t, store)
		if !s.IsAuthenticated() || s.User().ID != "u-1" {
			t.Fatalf("user = %+v, want restored remote user", s.User())
		}
	})
}

func TestSessionLoginRouting(t *testing.T) {
	t.Run("demo email", func(t *testing.T) {
		s := newTestSession(t, NewMemory())
		res := s.Login("admin@imsop.io", "admin123")
		if !res.Success || s.User() == nil || s.User().Role != "admin" {
			t.Fatalf("res = %+v, user = %+v", res, s.User())
		}
	})

	t.Run("remote email", func(t *testing.T) {
		s := newTestSession(t, NewMemory())
		res := s.Login("user@example.com", "secret123")
		if !res.Success || s.User() == nil || s.User().ID != "u-1" {
			t.Fatalf("res = %+v, user = %+v", res, s.User())
		}
	})

	t.Run("failed login leaves session signed out", func(t *testing.T) {
		s := newTestSession(t, NewMemory())
		res := s.Login("admin@imsop.io", "wrong")
		if res.Success || s.IsAuthenticated() {
			t.Fatalf("res = %+v, authenticated = %v", res, s.IsAuthenticated())
		}
	})
}

func TestSessionRegisterRouting(t *testing.T) {
	s := newTestSession(t, NewMemory())

	res := s.Register("new@imsop.io", "password123", "New User")
	if res.Success || res.Code != CodeDemoRegistrationDisallowed {
		t.Fatalf("demo email register = %+v, want DEMO_REGISTRATION_DISALLOWED", res)
	}

	res = s.Register("new@example.com", "password123", "New User")
	if !res.Success {
		t.Fatalf("remote register failed: %q", res.Error)
	}
	if s.IsAuthenticated() {
		t.Error("registration must not sign the user in")
	}
}

func TestSessionLogoutClearsBothProviders(t *testing.T) {
	store := NewMemory()
	s := newTestSession(t, store)

	// A demo session plus a leftover remote user record.
	s.Login("admin@imsop.io", "admin123")
	store.Set(RemoteUserKey, `{"id":"u-1","email":"user@example.com","name":"Real User","role":"user"}`)

	s.Logout()

	if s.IsAuthenticated() {
		t.Error("session must be signed out")
	}
	for _, key := range []string{TokenKey, DemoUserKey, RemoteUserKey} {
		if store.Get(key) != "" {
			t.Errorf("key %q must be cleared on logout", key)
		}
	}
}

func TestSessionProfileOperations(t *testing.T) {
	t.Run("fail fast when signed out", func(t *testing.T) {
		s := newTestSession(t, NewMemory())
		name := "x"
		if res := s.UpdateProfile("1", ProfileUpdates{Name: &name}); res.Success || res.Code != CodeNotAuthenticated {
			t.Fatalf("UpdateProfile = %+v, want NOT_AUTHENTICATED", res)
		}
		if res := s.ChangePassword("1", "a", "b"); res.Success || res.Code != CodeNotAuthenticated {
			t.Fatalf("ChangePassword = %+v, want NOT_AUTHENTICATED", res)
		}
	})

	t.Run("demo session", func(t *testing.T) {
		s := newTestSession(t, NewMemory())
		s.Login("admin@imsop.io", "admin123")

		name := "Renamed"
		res := s.UpdateProfile("1", ProfileUpdates{Name: &name})
		if !res.Success {
			t.Fatalf("UpdateProfile failed: %q", res.Error)
		}
		if s.User().Name != "Renamed" {
			t.Errorf("cached user = %+v, want updated name", s.User())
		}
		if res := s.ChangePassword("1", "admin123", "next12345"); !res.Success {
			t.Errorf("ChangePassword failed: %q", res.Error)
		}
	})

	t.Run("remote session", func(t *testing.T) {
		s := newTestSession(t, NewMemory())
		s.Login("user@example.com", "secret123")

		name := "Renamed"
		res := s.UpdateProfile("u-1", ProfileUpdates{Name: &name})
		if !res.Success || s.User().Name != "Renamed" {
			t.Fatalf("res = %+v, user = %+v", res, s.User())
		}
		if res := s.ChangePassword("u-1", "secret123", "next12345"); !res.Success {
			t.Errorf("ChangePassword failed: %q", res.Error)
		}
	})
}

func TestSessionResetPasswordRouting(t *testing.T) {
	s := newTestSession(t, NewMemory())

	demoToken := s.RequestPasswordReset("admin@imsop.io")
	if !demoToken.Success {
		t.Fatalf("demo reset request failed: %q", demoToken.Error)
	}
	if res := s.ResetPassword(demoToken.Token, "newpassword1"); !res.Success {
		t.Errorf("demo reset failed: %q", res.Error)
	}

	remoteToken := s.RequestPasswordReset("user@example.com")
	if !remoteToken.Success {
		t.Fatalf("remote reset request failed: %q", remoteToken.Error)
	}
	if res := s.ResetPassword(remoteToken.Token, "newpassword1"); !res.Success {
		t.Errorf("remote reset failed: %q", res.Error)
	}
}
