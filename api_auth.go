package hybridauth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func writeAuthError(w http.ResponseWriter, status int, err *AuthError) {
	writeJSON(w, status, err)
}

// handleLogin implements POST /api/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeMissingField, "Invalid request body", ""))
		return
	}
	if req.Email == "" || req.Password == "" {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeMissingField, "Email and password required", ""))
		return
	}

	user, err := s.UserStore.Authenticate(req.Email, req.Password)
	if err != nil || user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.signAuthToken(user)
	if err != nil {
		log.Printf("error signing token: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.setLoggedInUser(user, token, r)
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

// handleRegister implements POST /api/auth/register. New accounts always get
// the "user" role; elevated roles are assigned out of band.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeMissingField, "Invalid request body", ""))
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeMissingField, "Email, password and name required", ""))
		return
	}
	if len(req.Password) < 8 {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeWeakPassword, "Password must be at least 8 characters", "password"))
		return
	}

	user, err := s.UserStore.CreateUser(req.Email, req.Password, req.Name, RoleUser)
	if err != nil {
		if err == ErrEmailExists {
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		log.Printf("error creating user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

// handleMe implements GET /api/auth/me.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID := s.Middleware.GetLoggedInUserId(r)
	user, err := s.UserStore.GetUserByID(userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// handleRequestReset implements POST /api/auth/request-reset.
//
// The response is identical whether or not the email exists, to avoid
// revealing which accounts are registered. Tokens for unknown emails are
// generated but never persisted, so they cannot be redeemed.
func (s *Server) handleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeMissingField, "Email required", "email"))
		return
	}

	var tokenValue string
	user, err := s.UserStore.GetUserByEmail(req.Email)
	if err == nil && user != nil && s.TokenStore != nil {
		token, err := s.TokenStore.CreateToken(user.ID, user.Email, TokenTypePasswordReset, TokenExpiryPasswordReset)
		if err != nil {
			log.Printf("error creating reset token: %v", err)
		} else {
			tokenValue = token.Token
		}
	}
	if tokenValue == "" {
		// Decoy token, same shape as a real one.
		tokenValue, _ = GenerateSecureToken()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "If that email exists, a reset link has been sent",
		"token":   tokenValue,
	})
}

// handleResetPassword implements POST /api/auth/reset-password. Tokens are
// single use: redemption deletes them even before expiry.
func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.NewPassword == "" {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeMissingField, "Token and password required", ""))
		return
	}
	if len(req.NewPassword) < 8 {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeWeakPassword, "Password must be at least 8 characters", "password"))
		return
	}

	resetToken, err := s.TokenStore.GetToken(req.Token)
	if err != nil {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeInvalidToken, "Invalid or expired token", "token"))
		return
	}
	if resetToken.Type != TokenTypePasswordReset {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeInvalidToken, "Invalid token type", "token"))
		return
	}

	if err := s.UserStore.UpdatePasswordByEmail(resetToken.Email, req.NewPassword); err != nil {
		log.Printf("error updating password: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	if err := s.TokenStore.DeleteToken(req.Token); err != nil {
		log.Printf("warning: failed to delete token: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleUpdateProfile implements PATCH /api/auth/profile/{id}. Users may only
// update their own profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if s.Middleware.GetLoggedInUserId(r) != id {
		writeAuthError(w, http.StatusForbidden, NewAuthError(ErrCodeNotAuthorized, "Cannot update another user's profile", ""))
		return
	}

	var updates ProfileUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeMissingField, "Invalid request body", ""))
		return
	}
	if updates.Name != nil && strings.TrimSpace(*updates.Name) == "" {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeMissingField, "Name cannot be empty", "name"))
		return
	}

	user, err := s.UserStore.UpdateProfile(id, updates)
	if err != nil {
		if err == ErrUserNotFound {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("error updating profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// handleChangePassword implements POST /api/auth/change-password/{id}.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if s.Middleware.GetLoggedInUserId(r) != id {
		writeAuthError(w, http.StatusForbidden, NewAuthError(ErrCodeNotAuthorized, "Cannot change another user's password", ""))
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeMissingField, "Current and new password required", ""))
		return
	}
	if len(req.NewPassword) < 8 {
		writeAuthError(w, http.StatusBadRequest, NewAuthError(ErrCodeWeakPassword, "Password must be at least 8 characters", "password"))
		return
	}

	if err := s.UserStore.VerifyPassword(id, req.CurrentPassword); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid current password")
		return
	}
	if err := s.UserStore.UpdatePassword(id, req.NewPassword); err != nil {
		log.Printf("error updating password: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleLogout implements POST /api/auth/logout for cookie-session clients.
// Bearer tokens are stateless; clients discard them locally.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setLoggedInUser(nil, "", r)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
