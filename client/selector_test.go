package client

import "testing"

func TestIsDemoEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"admin@imsop.io", true},
		{"anyone@imsop.io", true},
		{"operator@demo.local", true},
		{"dev@dev.local", true},
		{"admin@demo.com", true},
		{"ADMIN@IMSOP.IO", true},
		{"  admin@imsop.io  ", true},
		{"user@example.com", false},
		{"other@demo.com", false},
		{"admin@imsop.io.evil.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsDemoEmail(tt.email); got != tt.want {
				t.Errorf("IsDemoEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestSelectorRouting(t *testing.T) {
	store := NewMemory()
	demo := NewDemoProvider(store)
	remote := NewRemoteProvider("http://localhost:3001", store)
	sel := NewSelector(store, demo, remote)

	t.Run("by email", func(t *testing.T) {
		if sel.ForEmail("admin@imsop.io") != Provider(demo) {
			t.Error("demo email must route to the demo provider")
		}
		if sel.ForEmail("user@example.com") != Provider(remote) {
			t.Error("non-demo email must route to the remote provider")
		}
	})

	t.Run("ambient with no token", func(t *testing.T) {
		store.Remove(TokenKey)
		if sel.Ambient() != Provider(remote) {
			t.Error("no token must route to the remote provider")
		}
	})

	t.Run("ambient with mock token", func(t *testing.T) {
		store.Set(TokenKey, "mock_YWRtaW5AaW1zb3AuaW8=")
		if sel.Ambient() != Provider(demo) {
			t.Error("mock token must route to the demo provider")
		}
	})

	t.Run("ambient with jwt token", func(t *testing.T) {
		store.Set(TokenKey, "eyJhbGciOiJIUzI1NiJ9.payload.sig")
		if sel.Ambient() != Provider(remote) {
			t.Error("non-mock token must route to the remote provider")
		}
	})

	t.Run("reset token routing", func(t *testing.T) {
		if sel.ForResetToken("mock_reset_YWJj") != Provider(demo) {
			t.Error("mock reset token must route to the demo provider")
		}
		if sel.ForResetToken("a1b2c3d4") != Provider(remote) {
			t.Error("backend reset token must route to the remote provider")
		}
		// A plain session token is not a reset token.
		if sel.ForResetToken("mock_YWJj") != Provider(remote) {
			t.Error("mock session token must not route resets to the demo provider")
		}
	})
}
