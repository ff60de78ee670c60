package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/sitestock/models"
	"p9e.in/sitestock/pkg/apperr"
)

type userView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Role     string    `json:"role"`
	Phone    string    `json:"phone,omitempty"`
	IsActive bool      `json:"isActive"`
}

// ListUsers returns every account joined with its profile. Accounts without
// a profile row still appear, with an empty name and the worker role.
func ListUsers(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	var users []models.User
	if err := db.Order("created_at desc").Find(&users).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}

	var profiles []models.UserProfile
	if err := db.Find(&profiles).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	byID := make(map[uuid.UUID]models.UserProfile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	out := make([]userView, 0, len(users))
	for _, u := range users {
		v := userView{ID: u.ID, Email: u.Email, Role: models.RoleWorker, IsActive: u.IsActive}
		if p, found := byID[u.ID]; found {
			v.FullName = p.FullName
			v.Role = p.Role
			v.Phone = p.Phone
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, out)
}

func GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var u models.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}

	v := userView{ID: u.ID, Email: u.Email, Role: models.RoleWorker, IsActive: u.IsActive}
	var p models.UserProfile
	if err := db.First(&p, "id = ?", id).Error; err == nil {
		v.FullName = p.FullName
		v.Role = p.Role
		v.Phone = p.Phone
	}
	writeJSON(w, http.StatusOK, v)
}

type updateRoleReq struct {
	Role string `json:"role"`
}

// UpdateUserRole changes a user's role. The change takes effect on the
// user's next token refresh since the role rides in the JWT claims.
func UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req updateRoleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if !models.IsValidRole(req.Role) {
		writeError(w, apperr.Validation(map[string]string{"role": "Unknown role"}))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	res := db.Model(&models.UserProfile{}).Where("id = ?", id).Update("role", req.Role)
	if res.Error != nil {
		writeError(w, apperr.FromDB(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, apperr.New(apperr.NotFound, "profile not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Role updated"})
}

type updateProfileReq struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
}

func UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			writeError(w, apperr.Validation(map[string]string{"fullName": "Full name is required"}))
			return
		}
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if len(updates) == 0 {
		http.Error(w, "nothing to update", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	res := db.Model(&models.UserProfile{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		writeError(w, apperr.FromDB(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, apperr.New(apperr.NotFound, "profile not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Profile updated"})
}

// DeactivateUser flips is_active off. The row is kept so transaction
// history retains its author.
func DeactivateUser(w http.ResponseWriter, r *http.Request) {
	setUserActive(w, r, false)
}

func ReactivateUser(w http.ResponseWriter, r *http.Request) {
	setUserActive(w, r, true)
}

func setUserActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	res := db.Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		writeError(w, apperr.FromDB(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, apperr.New(apperr.NotFound, "user not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "User updated", "isActive": active})
}
