package hybridauth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestMiddleware() *Middleware {
	return &Middleware{
		VerifyToken: func(token string) (string, any, error) {
			if token == "good-token" {
				return "u-1", nil, nil
			}
			return "", nil, fmt.Errorf("bad token")
		},
		SessionGetter: func(r *http.Request, param string) any {
			if c, err := r.Cookie("session_user"); err == nil {
				return c.Value
			}
			return nil
		},
	}
}

func TestGetLoggedInUserId(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		cookie  string
		want    string
	}{
		{"no credentials", nil, "", ""},
		{"valid bearer token", map[string]string{"Authorization": "Bearer good-token"}, "", "u-1"},
		{"bearer without prefix", map[string]string{"Authorization": "good-token"}, "", "u-1"},
		{"invalid bearer token", map[string]string{"Authorization": "Bearer bad-token"}, "", ""},
		{"cookie session", nil, "u-2", "u-2"},
		{"bearer wins over cookie", map[string]string{"Authorization": "Bearer good-token"}, "u-2", "u-1"},
		{"bad bearer falls through to cookie", map[string]string{"Authorization": "Bearer bad-token"}, "u-2", "u-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMiddleware()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: "session_user", Value: tt.cookie})
			}

			if got := m.GetLoggedInUserId(r); got != tt.want {
				t.Errorf("GetLoggedInUserId() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureUser(t *testing.T) {
	m := newTestMiddleware()

	var sawUserID string
	handler := m.EnsureUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawUserID = m.GetLoggedInUserId(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("authenticated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if sawUserID != "u-1" {
			t.Errorf("handler saw user %q, want u-1", sawUserID)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestExtractUserDoesNotBlock(t *testing.T) {
	m := newTestMiddleware()

	handler := m.ExtractUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("anonymous request status = %d, want 200", w.Code)
	}
}
