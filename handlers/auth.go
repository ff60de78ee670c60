// handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"p9e.in/sitestock/middleware"
	"p9e.in/sitestock/models"
	"p9e.in/sitestock/pkg/apperr"
)

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Register creates the auth identity and its profile row in one
// transaction. New accounts default to the worker role.
func Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "Email is required"
	}
	if len(req.Password) < 8 {
		fields["password"] = "Password must be at least 8 characters"
	}
	if strings.TrimSpace(req.FullName) == "" {
		fields["fullName"] = "Full name is required"
	}
	role := req.Role
	if role == "" {
		role = models.RoleWorker
	}
	if !models.IsValidRole(role) {
		fields["role"] = "Unknown role"
	}
	if len(fields) > 0 {
		writeError(w, apperr.Validation(fields))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	id := uuid.New()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.User{
			ID:           id,
			Email:        req.Email,
			PasswordHash: string(hash),
			IsActive:     true,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserProfile{
			ID:       id,
			FullName: req.FullName,
			Role:     role,
		}).Error
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		writeError(w, apperr.FromDB(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token   string              `json:"token"`
	User    userPayload         `json:"user"`
	Profile *models.UserProfile `json:"profile"`
}

type userPayload struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// Login verifies credentials and issues a JWT. The profile is loaded as a
// second step and may legitimately be nil in the response; the token is
// valid either way.
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var u models.User
	if err := db.Where("email = ? AND is_active = ?", req.Email, true).First(&u).Error; err != nil {
		if appErr := apperr.FromDB(err); appErr.Kind == apperr.Unavailable {
			writeError(w, appErr)
			return
		}
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	// Second, ordered step: the profile load. Login still succeeds when the
	// row is missing; the client renders the partial-auth state.
	var profile *models.UserProfile
	role := models.RoleWorker
	var p models.UserProfile
	if err := db.First(&p, "id = ?", u.ID).Error; err == nil {
		profile = &p
		role = p.Role
	}

	token, err := middleware.GenerateToken(u.ID.String(), u.Email, role)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, loginResp{
		Token:   token,
		User:    userPayload{ID: u.ID, Email: u.Email, Role: role},
		Profile: profile,
	})
}

// GetCurrentUser returns the authenticated identity plus the profile when
// present. profile is null until the profile row exists, mirroring the two
// ordered auth states.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	profile := middleware.GetProfile(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":  claims.UserID,
		"email":   claims.Email,
		"role":    claims.Role,
		"profile": profile,
	})
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword updates the caller's own password.
func ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req changePasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, apperr.Validation(map[string]string{
			"newPassword": "Password must be at least 8 characters",
		}))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var u models.User
	if err := db.First(&u, "id = ?", claims.UserID).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		http.Error(w, "current password is incorrect", http.StatusUnauthorized)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}
	if err := db.Model(&u).Update("password_hash", string(hash)).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Password updated successfully"})
}
