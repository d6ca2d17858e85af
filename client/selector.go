package client

import "strings"

// demoExactEmails and demoDomains define which addresses belong to the demo
// provider. An email matches if it equals an entry here or ends with one of
// the demo domains, case-insensitively.
var demoExactEmails = []string{
	"admin@demo.com",
}

var demoDomains = []string{
	"@imsop.io",
	"@demo.local",
	"@dev.local",
}

// IsDemoEmail reports whether email belongs to the demo provider's namespace.
// Matching is case-insensitive and ignores surrounding whitespace.
func IsDemoEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, exact := range demoExactEmails {
		if email == exact {
			return true
		}
	}
	for _, domain := range demoDomains {
		if strings.HasSuffix(email, domain) {
			return true
		}
	}
	return false
}

// Selector routes each operation to the demo or remote provider. When an
// email is in hand the email decides; otherwise the stored token's prefix
// does.
type Selector struct {
	store  Store
	demo   Provider
	remote Provider
}

func NewSelector(store Store, demo, remote Provider) *Selector {
	return &Selector{store: store, demo: demo, remote: remote}
}

// ForEmail picks the provider that owns the given address.
func (s *Selector) ForEmail(email string) Provider {
	if IsDemoEmail(email) {
		return s.demo
	}
	return s.remote
}

// Ambient picks a provider from the stored session token alone. A demo token
// carries the mock prefix; anything else, including no token at all, routes
// to the remote provider.
func (s *Selector) Ambient() Provider {
	if strings.HasPrefix(s.store.Get(TokenKey), mockTokenPrefix) {
		return s.demo
	}
	return s.remote
}

// ForResetToken routes a password reset token to its issuer.
func (s *Selector) ForResetToken(token string) Provider {
	if strings.HasPrefix(token, mockResetPrefix) {
		return s.demo
	}
	return s.remote
}
