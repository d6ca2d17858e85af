package hybridauth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType represents different types of auth tokens
type TokenType string

const (
	TokenTypePasswordReset TokenType = "password_reset"
)

// TokenExpiryPasswordReset is how long a reset token stays redeemable.
const TokenExpiryPasswordReset = 1 * time.Hour

// ResetToken is a short-lived, single-use token for the password reset flow.
type ResetToken struct {
	Token     string    `json:"token"`
	Type      TokenType `json:"type"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired checks if a token has expired
func (t *ResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// TokenStore interface for managing reset tokens
type TokenStore interface {
	CreateToken(userID, email string, tokenType TokenType, expiryDuration time.Duration) (*ResetToken, error)
	GetToken(token string) (*ResetToken, error)
	DeleteToken(token string) error
}

// GenerateSecureToken generates a cryptographically secure random token
func GenerateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// signAuthToken issues the bearer JWT returned by login. Claims mirror what
// the dashboard expects: subject is the user ID, email and role ride along.
func (s *Server) signAuthToken(user *User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iss":   s.JwtIssuer,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Second * time.Duration(s.SessionTimeoutInSeconds)).Unix(),
	})
	return token.SignedString([]byte(s.JWTSecretKey))
}

// verifyAuthToken parses a bearer JWT and returns the subject user ID.
func (s *Server) verifyAuthToken(tokenString string) (loggedInUserId string, t any, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.JWTSecretKey), nil
	})
	if err != nil {
		return "", nil, err
	}
	if !token.Valid {
		return "", nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims == nil {
		return "", nil, fmt.Errorf("claims is not a map")
	}
	sub, err := claims.GetSubject()
	if sub == "" {
		return "", nil, fmt.Errorf("subject not found")
	} else if err != nil {
		return "", nil, err
	}
	return sub, token, nil
}
