package client

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

const (
	// mockTokenPrefix marks credentials issued by the demo provider. The
	// Selector keys off it when no email is available.
	mockTokenPrefix = "mock_"

	// mockResetPrefix namespaces demo reset tokens so they can never collide
	// with session tokens or with tokens issued by the backend.
	mockResetPrefix = "mock_reset_"

	// defaultLoginDelay approximates a network round trip so demo logins feel
	// like real ones.
	defaultLoginDelay = 500 * time.Millisecond
)

// demoAccount is a roster entry. The password lives only here; it is stripped
// before the user is returned or persisted.
type demoAccount struct {
	user     User
	password string
}

// demoRoster is the fixed set of accounts the demo provider recognizes.
// Nothing can be added to or removed from it at runtime.
var demoRoster = []demoAccount{
	{User{ID: "1", Email: "admin@imsop.io", Name: "Admin User", Role: "admin"}, "admin123"},
	{User{ID: "2", Email: "engineer@imsop.io", Name: "Engineer User", Role: "engineer"}, "engineer123"},
	{User{ID: "3", Email: "analyst@imsop.io", Name: "Analyst User", Role: "analyst"}, "analyst123"},
	{User{ID: "4", Email: "demo@imsop.io", Name: "Demo User", Role: "user"}, "demo123"},
}

// DemoProvider authenticates against the fixed roster without any backend.
// Sessions live entirely in the credential store, so demo logins survive
// restarts the same way remote ones do.
type DemoProvider struct {
	store Store
	delay time.Duration
}

var _ Provider = (*DemoProvider)(nil)

func NewDemoProvider(store Store) *DemoProvider {
	return &DemoProvider{store: store, delay: defaultLoginDelay}
}

// Login checks the roster with exact email and password matching. On success
// it persists a prefixed session token and the sanitized user record.
func (d *DemoProvider) Login(email, password string) Result {
	if d.delay > 0 {
		time.Sleep(d.delay)
	}

	for _, acct := range demoRoster {
		if acct.user.Email == email && acct.password == password {
			user := acct.user
			d.store.Set(TokenKey, mockTokenPrefix+base64.StdEncoding.EncodeToString([]byte(email)))
			if data, err := json.Marshal(&user); err == nil {
				d.store.Set(DemoUserKey, string(data))
			}
			return success(&user)
		}
	}

	return failure(CodeInvalidCredentials, msgInvalidCredentials)
}

// Logout removes the demo session unconditionally.
func (d *DemoProvider) Logout() {
	d.store.Remove(TokenKey)
	d.store.Remove(DemoUserKey)
}

// CurrentUser returns the cached demo session, if any.
func (d *DemoProvider) CurrentUser() Result {
	data := d.store.Get(DemoUserKey)
	if data == "" {
		return failure(CodeNotAuthenticated, msgNotAuthenticated)
	}

	var user User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		// Corrupt session entry. Treat it as absent.
		d.store.Remove(DemoUserKey)
		return failure(CodeNotAuthenticated, msgNotAuthenticated)
	}
	return success(&user)
}

// Register always fails: the roster is fixed.
func (d *DemoProvider) Register(email, password, name string) Result {
	return failure(CodeDemoRegistrationDisallowed, msgDemoRegistration)
}

// RequestPasswordReset fabricates a reset token without touching any account
// state. The token round-trips through ResetPassword and nothing else.
func (d *DemoProvider) RequestPasswordReset(email string) Result {
	token := mockResetPrefix + base64.StdEncoding.EncodeToString([]byte(email))
	return Result{Success: true, Token: token}
}

// ResetPassword accepts any well-formed demo reset token. Roster passwords
// are immutable, so success here changes nothing.
func (d *DemoProvider) ResetPassword(token, newPassword string) Result {
	encoded, ok := strings.CutPrefix(token, mockResetPrefix)
	if !ok {
		return failure(CodeInvalidResetToken, msgInvalidResetToken)
	}
	if _, err := base64.StdEncoding.DecodeString(encoded); err != nil {
		return failure(CodeInvalidResetToken, msgInvalidResetToken)
	}
	return Result{Success: true}
}

// UpdateProfile merges name and avatar into the cached session user and
// re-persists it. The change lasts only as long as the stored session.
func (d *DemoProvider) UpdateProfile(userID string, updates ProfileUpdates) Result {
	res := d.CurrentUser()
	if !res.Success {
		return failure(CodeNotAuthenticated, msgNotAuthenticated)
	}

	user := *res.User
	if updates.Name != nil {
		user.Name = *updates.Name
	}
	if updates.Avatar != nil {
		user.Avatar = *updates.Avatar
	}

	if data, err := json.Marshal(&user); err == nil {
		d.store.Set(DemoUserKey, string(data))
	}
	return success(&user)
}

// ChangePassword reports success without verifying or changing anything.
// Demo passwords are fixed by the roster.
func (d *DemoProvider) ChangePassword(userID, currentPassword, newPassword string) Result {
	return Result{Success: true}
}
