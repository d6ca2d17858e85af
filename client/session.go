package client

import (
	"net/http"
	"sync"
)

// Config wires up a Session. Store is required; BaseURL points at the
// dashboard backend. Demo and Remote override the default providers, which
// tests use to substitute fakes.
type Config struct {
	Store      Store
	BaseURL    string
	HTTPClient *http.Client
	Demo       Provider
	Remote     Provider
}

// Session is the single authentication entry point the dashboard UI talks
// to. It resolves the ambient session at construction time, caches the
// signed-in user, and routes every operation through the Selector so callers
// never know which provider served them.
type Session struct {
	mu       sync.RWMutex
	user     *User
	loading  bool
	selector *Selector
	demo     Provider
	remote   Provider
}

// New builds a Session and synchronously restores any existing session from
// the store. IsLoading reports true only while that restore is in flight, so
// after New returns it is always false; the flag exists for callers that
// observe the Session from another goroutine during construction.
func New(cfg Config) *Session {
	store := cfg.Store
	if store == nil {
		store = NewMemory()
	}

	demo := cfg.Demo
	if demo == nil {
		demo = NewDemoProvider(store)
	}
	remote := cfg.Remote
	if remote == nil {
		var opts []RemoteOption
		if cfg.HTTPClient != nil {
			opts = append(opts, WithHTTPClient(cfg.HTTPClient))
		}
		remote = NewRemoteProvider(cfg.BaseURL, store, opts...)
	}

	s := &Session{
		loading:  true,
		selector: NewSelector(store, demo, remote),
		demo:     demo,
		remote:   remote,
	}

	res := s.selector.Ambient().CurrentUser()

	s.mu.Lock()
	if res.Success {
		s.user = res.User
	}
	s.loading = false
	s.mu.Unlock()

	return s
}

// User returns the cached signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

// IsLoading reports whether the initial session restore is still running.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) setUser(user *User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Login routes by email and caches the user on success.
func (s *Session) Login(email, password string) Result {
	res := s.selector.ForEmail(email).Login(email, password)
	if res.Success {
		s.setUser(res.User)
	}
	return res
}

// Logout signs out of both providers so no stale session survives in either
// namespace, then clears the cached user. It always succeeds.
func (s *Session) Logout() {
	s.demo.Logout()
	s.remote.Logout()
	s.setUser(nil)
}

// Register routes by email. Demo addresses are rejected by the demo provider;
// a successful remote registration does not sign the user in.
func (s *Session) Register(email, password, name string) Result {
	return s.selector.ForEmail(email).Register(email, password, name)
}

// RequestPasswordReset routes by email.
func (s *Session) RequestPasswordReset(email string) Result {
	return s.selector.ForEmail(email).RequestPasswordReset(email)
}

// ResetPassword routes by the token's issuer prefix.
func (s *Session) ResetPassword(token, newPassword string) Result {
	return s.selector.ForResetToken(token).ResetPassword(token, newPassword)
}

// UpdateProfile requires a signed-in user and routes to the provider that
// owns the active session. The cached user is refreshed on success.
func (s *Session) UpdateProfile(userID string, updates ProfileUpdates) Result {
	if !s.IsAuthenticated() {
		return failure(CodeNotAuthenticated, msgNotAuthenticated)
	}

	res := s.selector.Ambient().UpdateProfile(userID, updates)
	if res.Success {
		s.setUser(res.User)
	}
	return res
}

// ChangePassword requires a signed-in user and routes to the provider that
// owns the active session.
func (s *Session) ChangePassword(userID, currentPassword, newPassword string) Result {
	if !s.IsAuthenticated() {
		return failure(CodeNotAuthenticated, msgNotAuthenticated)
	}
	return s.selector.Ambient().ChangePassword(userID, currentPassword, newPassword)
}
