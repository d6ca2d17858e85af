package hybridauth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type userParamNameKey string

// Middleware extracts the logged in user from a request, checking the bearer
// Authorization header first and the cookie session second.
type Middleware struct {
	AuthTokenHeaderName string
	UserParamName       string
	SessionGetter       func(r *http.Request, param string) any
	VerifyToken         func(tokenString string) (loggedInUserId string, token any, err error)
}

func (a *Middleware) EnsureReasonableDefaults() {
	if a.UserParamName == "" {
		a.UserParamName = "loggedInUserId"
	}
	if a.AuthTokenHeaderName == "" {
		a.AuthTokenHeaderName = "Authorization"
	}
}

func (a *Middleware) userParamName() string {
	a.EnsureReasonableDefaults()
	return a.UserParamName
}

// GetLoggedInUserId returns the ID of the logged in user for the current
// request, or "" when unauthenticated.
func (a *Middleware) GetLoggedInUserId(r *http.Request) string {
	a.EnsureReasonableDefaults()

	v := r.Context().Value(userParamNameKey(a.UserParamName))
	if v != nil {
		if loggedInUserId, ok := v.(string); ok && loggedInUserId != "" {
			return loggedInUserId
		}
	}

	// Bearer tokens take precedence over cookie sessions so API clients and
	// browser tabs cannot shadow each other.
	if a.VerifyToken != nil {
		for _, header := range r.Header.Values(a.AuthTokenHeaderName) {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				continue
			}
			loggedInUserId, _, err := a.VerifyToken(token)
			if err == nil && loggedInUserId != "" {
				return loggedInUserId
			} else if err != nil {
				slog.Warn("error verifying token", "error", err)
			}
		}
	}

	if a.SessionGetter != nil {
		if userParam := a.SessionGetter(r, a.UserParamName); userParam != nil && userParam != "" {
			if out, ok := userParam.(string); ok {
				return out
			}
		}
	}

	return ""
}

// ExtractUser loads the logged in user ID into the request context for
// downstream handlers without enforcing that one exists.
func (a *Middleware) ExtractUser(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			userParam := a.GetLoggedInUserId(r)
			next.ServeHTTP(w, a.setLoggedInUserId(userParam, r))
		},
	)
}

// EnsureUser is ExtractUser plus a 401 for anonymous requests.
func (a *Middleware) EnsureUser(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			userParam := a.GetLoggedInUserId(r)
			if userParam == "" {
				writeError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			next.ServeHTTP(w, a.setLoggedInUserId(userParam, r))
		},
	)
}

// Set the logged in user id into the request's context so it is available to
// all handlers downstream.
func (a *Middleware) setLoggedInUserId(userId string, r *http.Request) *http.Request {
	contextWithUser := context.WithValue(r.Context(), userParamNameKey(a.UserParamName), userId)
	return r.WithContext(contextWithUser)
}
