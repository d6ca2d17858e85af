package hybridauth

// Roles recognized by the dashboard. New accounts default to RoleUser;
// anything else is assigned at seed time or by an administrator.
const (
	RoleAdmin    = "admin"
	RoleEngineer = "engineer"
	RoleAnalyst  = "analyst"
	RoleUser     = "user"
)

// User is the sanitized identity record returned by the API. Password hashes
// never leave the store layer.
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

// UserStore manages dashboard accounts.
type UserStore interface {
	// CreateUser creates a new account with a hashed password.
	// Returns ErrEmailExists if the email is already registered.
	CreateUser(email, password, name, role string) (*User, error)

	// GetUserByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetUserByID(id string) (*User, error)

	// GetUserByEmail retrieves a user by email (case-insensitive).
	GetUserByEmail(email string) (*User, error)

	// Authenticate verifies an email/password pair and returns the user.
	// Returns ErrInvalidCredentials on any mismatch.
	Authenticate(email, password string) (*User, error)

	// VerifyPassword checks a password against the stored hash for a user ID.
	VerifyPassword(id, password string) error

	// UpdateProfile applies profile updates and returns the updated user.
	UpdateProfile(id string, updates ProfileUpdates) (*User, error)

	// UpdatePassword replaces the password hash for a user ID.
	UpdatePassword(id, newPassword string) error

	// UpdatePasswordByEmail replaces the password hash for the account owning
	// the email. Used by the reset flow, where only the token's email is known.
	UpdatePasswordByEmail(email, newPassword string) error
}
