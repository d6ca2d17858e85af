package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultRequestTimeout bounds every backend call so a hung server cannot
// wedge the session layer.
const defaultRequestTimeout = 15 * time.Second

// RemoteProvider authenticates against the dashboard backend's REST API.
// Every operation returns a uniform Result; transport failures and non-2xx
// responses are folded into NETWORK_ERROR and SERVER_ERROR codes rather than
// surfaced as Go errors, so callers handle demo and remote outcomes the same
// way.
type RemoteProvider struct {
	baseURL    string
	store      Store
	httpClient *http.Client
}

var _ Provider = (*RemoteProvider)(nil)

// RemoteOption configures a RemoteProvider
type RemoteOption func(*RemoteProvider)

// WithHTTPClient sets a custom HTTP client (for timeouts, TLS config, etc.)
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(p *RemoteProvider) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// NewRemoteProvider creates a provider for the backend at baseURL.
func NewRemoteProvider(baseURL string, store Store, opts ...RemoteOption) *RemoteProvider {
	// Normalize base URL
	u, err := url.Parse(baseURL)
	if err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = fmt.Sprintf("%s://%s", u.Scheme, u.Host)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	p := &RemoteProvider{
		baseURL:    baseURL,
		store:      store,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// serverError is the error envelope the backend returns on failures.
type serverError struct {
	Error string `json:"error"`
}

// do sends one JSON request. authed attaches the stored bearer token.
// A nil response with ok=false means the request never reached the server.
func (p *RemoteProvider) do(method, path string, body any, authed bool) (status int, respBody []byte, ok bool) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, false
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, p.baseURL+path, reader)
	if err != nil {
		return 0, nil, false
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		if token := p.store.Get(TokenKey); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, nil, false
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, false
	}
	return resp.StatusCode, respBody, true
}

// errorMessage extracts the server's error field, falling back to a generic
// per-operation message.
func errorMessage(body []byte, fallback string) string {
	var se serverError
	if err := json.Unmarshal(body, &se); err == nil && se.Error != "" {
		return se.Error
	}
	return fallback
}

// Login authenticates via POST /api/auth/login and persists the returned
// token and user on success.
func (p *RemoteProvider) Login(email, password string) Result {
	status, body, ok := p.do(http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, false)
	if !ok {
		return failure(CodeNetworkError, msgNetworkError)
	}

	if status == http.StatusUnauthorized {
		return failure(CodeInvalidCredentials, errorMessage(body, msgInvalidCredentials))
	}
	if status < 200 || status >= 300 {
		return failure(CodeServerError, errorMessage(body, "Login failed"))
	}

	var payload struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.User == nil {
		return failure(CodeServerError, "Login failed")
	}

	p.store.Set(TokenKey, payload.Token)
	if data, err := json.Marshal(payload.User); err == nil {
		p.store.Set(RemoteUserKey, string(data))
	}
	return Result{Success: true, User: payload.User, Token: payload.Token}
}

// Logout drops the remote session from the store. The bearer token is
// stateless on the server side, so no request is needed.
func (p *RemoteProvider) Logout() {
	p.store.Remove(TokenKey)
	p.store.Remove(RemoteUserKey)
}

// CurrentUser resolves the active remote session. The cached user record is
// the fast path; when only a token is present it is validated against
// GET /api/auth/me and the user re-cached.
func (p *RemoteProvider) CurrentUser() Result {
	token := p.store.Get(TokenKey)
	if token == "" || strings.HasPrefix(token, mockTokenPrefix) {
		return failure(CodeNotAuthenticated, msgNotAuthenticated)
	}

	if data := p.store.Get(RemoteUserKey); data != "" {
		var user User
		if err := json.Unmarshal([]byte(data), &user); err == nil {
			return success(&user)
		}
		p.store.Remove(RemoteUserKey)
	}

	status, body, ok := p.do(http.MethodGet, "/api/auth/me", nil, true)
	if !ok {
		return failure(CodeNetworkError, msgNetworkError)
	}
	if status < 200 || status >= 300 {
		return failure(CodeNotAuthenticated, msgNotAuthenticated)
	}

	var payload struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.User == nil {
		return failure(CodeNotAuthenticated, msgNotAuthenticated)
	}

	if data, err := json.Marshal(payload.User); err == nil {
		p.store.Set(RemoteUserKey, string(data))
	}
	return success(payload.User)
}

// Register creates an account via POST /api/auth/register. Registration does
// not log the user in; no credential is persisted.
func (p *RemoteProvider) Register(email, password, name string) Result {
	status, body, ok := p.do(http.MethodPost, "/api/auth/register",
		map[string]string{"email": email, "password": password, "name": name}, false)
	if !ok {
		return failure(CodeNetworkError, msgNetworkError)
	}
	if status < 200 || status >= 300 {
		return failure(CodeServerError, errorMessage(body, "Registration failed"))
	}

	var payload struct {
		User *User `json:"user"`
	}
	_ = json.Unmarshal(body, &payload)
	return Result{Success: true, User: payload.User}
}

// RequestPasswordReset asks the backend to issue a reset token.
func (p *RemoteProvider) RequestPasswordReset(email string) Result {
	status, body, ok := p.do(http.MethodPost, "/api/auth/request-reset",
		map[string]string{"email": email}, false)
	if !ok {
		return failure(CodeNetworkError, msgNetworkError)
	}
	if status < 200 || status >= 300 {
		return failure(CodeServerError, errorMessage(body, "Request failed"))
	}

	var payload struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &payload)
	return Result{Success: true, Token: payload.Token}
}

// ResetPassword redeems a reset token via POST /api/auth/reset-password.
func (p *RemoteProvider) ResetPassword(token, newPassword string) Result {
	status, body, ok := p.do(http.MethodPost, "/api/auth/reset-password",
		map[string]string{"token": token, "newPassword": newPassword}, false)
	if !ok {
		return failure(CodeNetworkError, msgNetworkError)
	}
	if status < 200 || status >= 300 {
		return failure(CodeServerError, errorMessage(body, "Reset failed"))
	}
	return Result{Success: true}
}

// UpdateProfile patches name and avatar via PATCH /api/auth/profile/{id} and
// refreshes the cached user on success.
func (p *RemoteProvider) UpdateProfile(userID string, updates ProfileUpdates) Result {
	if p.store.Get(TokenKey) == "" {
		return failure(CodeNotAuthenticated, msgNotAuthenticated)
	}

	status, body, ok := p.do(http.MethodPatch, "/api/auth/profile/"+url.PathEscape(userID), updates, true)
	if !ok {
		return failure(CodeNetworkError, msgNetworkError)
	}
	if status == http.StatusUnauthorized {
		return failure(CodeNotAuthenticated, msgNotAuthenticated)
	}
	if status < 200 || status >= 300 {
		return failure(CodeServerError, errorMessage(body, "Update failed"))
	}

	var payload struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.User == nil {
		return failure(CodeServerError, "Update failed")
	}

	if data, err := json.Marshal(payload.User); err == nil {
		p.store.Set(RemoteUserKey, string(data))
	}
	return success(payload.User)
}

// ChangePassword verifies the current password server-side and installs the
// new one via POST /api/auth/change-password/{id}.
func (p *RemoteProvider) ChangePassword(userID, currentPassword, newPassword string) Result {
	if p.store.Get(TokenKey) == "" {
		return failure(CodeNotAuthenticated, msgNotAuthenticated)
	}

	status, body, ok := p.do(http.MethodPost, "/api/auth/change-password/"+url.PathEscape(userID),
		map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}, true)
	if !ok {
		return failure(CodeNetworkError, msgNetworkError)
	}
	if status == http.StatusUnauthorized {
		return failure(CodeInvalidCredentials, errorMessage(body, msgInvalidCredentials))
	}
	if status < 200 || status >= 300 {
		return failure(CodeServerError, errorMessage(body, "Change failed"))
	}
	return Result{Success: true}
}
