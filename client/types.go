package client

// User is the sanitized identity record providers return. Passwords never
// appear here.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// ProfileUpdates carries the mutable profile fields. Nil means "leave as is".
type ProfileUpdates struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Code identifies the failure class of an auth operation.
type Code string

const (
	CodeInvalidCredentials         Code = "INVALID_CREDENTIALS"
	CodeNotAuthenticated           Code = "NOT_AUTHENTICATED"
	CodeDemoRegistrationDisallowed Code = "DEMO_REGISTRATION_DISALLOWED"
	CodeInvalidResetToken          Code = "INVALID_RESET_TOKEN"
	CodeNetworkError               Code = "NETWORK_ERROR"
	CodeServerError                Code = "SERVER_ERROR"
)

// User-visible messages, matching what the dashboard displays.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgNotAuthenticated   = "Not authenticated"
	msgDemoRegistration   = "Cannot register with a demo email. Please use a different email."
	msgInvalidResetToken  = "Invalid or expired reset token"
	msgNetworkError       = "Network error"
)

// Result is the uniform outcome of every provider and Session operation.
// Failures carry a Code and a display message; no provider ever panics or
// returns a raw transport error.
type Result struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
	Code    Code   `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success(user *User) Result {
	return Result{Success: true, User: user}
}

func failure(code Code, message string) Result {
	return Result{Success: false, Code: code, Error: message}
}

// Provider is the identity operations contract. Demo and Remote are the two
// implementations; the Selector picks between them and nothing else calls
// them directly.
type Provider interface {
	Login(email, password string) Result
	Logout()
	CurrentUser() Result
	Register(email, password, name string) Result
	RequestPasswordReset(email string) Result
	ResetPassword(token, newPassword string) Result
	UpdateProfile(userID string, updates ProfileUpdates) Result
	ChangePassword(userID, currentPassword, newPassword string) Result
}
