package hybridauth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateSecureToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		token, err := GenerateSecureToken()
		if err != nil {
			t.Fatalf("GenerateSecureToken() failed: %v", err)
		}
		if len(token) != 64 {
			t.Errorf("token length = %d, want 64 hex chars", len(token))
		}
		if seen[token] {
			t.Fatal("duplicate token generated")
		}
		seen[token] = true
	}
}

func TestResetTokenIsExpired(t *testing.T) {
	live := &ResetToken{ExpiresAt: time.Now().Add(time.Hour)}
	if live.IsExpired() {
		t.Error("future expiry reported as expired")
	}
	dead := &ResetToken{ExpiresAt: time.Now().Add(-time.Minute)}
	if !dead.IsExpired() {
		t.Error("past expiry reported as live")
	}
}

func TestAuthTokenRoundTrip(t *testing.T) {
	s := New("imsop-test")
	s.JWTSecretKey = "test-secret-key-for-testing-only"

	user := &User{ID: "u-1", Email: "a@example.com", Role: RoleAdmin}
	token, err := s.signAuthToken(user)
	if err != nil {
		t.Fatalf("signAuthToken() failed: %v", err)
	}

	userID, parsed, err := s.verifyAuthToken(token)
	if err != nil {
		t.Fatalf("verifyAuthToken() failed: %v", err)
	}
	if userID != "u-1" {
		t.Errorf("subject = %q, want u-1", userID)
	}

	claims := parsed.(*jwt.Token).Claims.(jwt.MapClaims)
	if claims["email"] != "a@example.com" || claims["role"] != RoleAdmin {
		t.Errorf("claims = %v", claims)
	}
	if claims["iss"] != s.JwtIssuer {
		t.Errorf("issuer = %v, want %q", claims["iss"], s.JwtIssuer)
	}
}

func TestVerifyAuthTokenRejections(t *testing.T) {
	s := New("imsop-test")
	s.JWTSecretKey = "test-secret-key-for-testing-only"
	user := &User{ID: "u-1", Email: "a@example.com", Role: RoleUser}

	t.Run("garbage token", func(t *testing.T) {
		if _, _, err := s.verifyAuthToken("not.a.jwt"); err == nil {
			t.Error("garbage token must fail verification")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := New("imsop-test")
		other.JWTSecretKey = "some-other-secret-key-entirely"
		token, err := other.signAuthToken(user)
		if err != nil {
			t.Fatal(err)
		}
		if _, _, err := s.verifyAuthToken(token); err == nil {
			t.Error("token signed with another key must fail verification")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		now := time.Now().Add(-time.Hour)
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": user.ID,
			"iat": now.Unix(),
			"exp": now.Add(time.Minute).Unix(),
		})
		token, err := raw.SignedString([]byte(s.JWTSecretKey))
		if err != nil {
			t.Fatal(err)
		}
		if _, _, err := s.verifyAuthToken(token); err == nil {
			t.Error("expired token must fail verification")
		}
	})

	t.Run("unsigned token", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": user.ID})
		token, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatal(err)
		}
		if _, _, err := s.verifyAuthToken(token); err == nil {
			t.Error("alg=none token must fail verification")
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"email": user.Email,
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		token, err := raw.SignedString([]byte(s.JWTSecretKey))
		if err != nil {
			t.Fatal(err)
		}
		if _, _, err := s.verifyAuthToken(token); err == nil {
			t.Error("token without a subject must fail verification")
		}
	})
}
