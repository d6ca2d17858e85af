package hybridauth

import "errors"

// Error codes returned in JSON error payloads alongside the message.
const (
	ErrCodeInvalidCreds  = "invalid_credentials"
	ErrCodeMissingField  = "missing_field"
	ErrCodeEmailExists   = "email_exists"
	ErrCodeInvalidToken  = "invalid_token"
	ErrCodeNotAuthorized = "not_authorized"
	ErrCodeWeakPassword  = "weak_password"
)

// Sentinel errors shared by store implementations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenExpired       = errors.New("token expired")
)

// AuthError is a structured authentication error with a stable code and an
// optional field hint for form-level errors.
type AuthError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Field   string `json:"field,omitempty"`
}

func (e *AuthError) Error() string {
	return e.Message
}

func NewAuthError(code, message, field string) *AuthError {
	return &AuthError{Code: code, Message: message, Field: field}
}
