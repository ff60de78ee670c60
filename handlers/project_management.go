package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"p9e.in/sitestock/middleware"
	"p9e.in/sitestock/models"
	"p9e.in/sitestock/pkg/apperr"
	"p9e.in/sitestock/pkg/listview"
)

// projectQuery builds the list derivation for projects. Shared with the
// project export so both endpoints see the same rows in the same order.
func projectQuery(r *http.Request) listview.Query[models.Project] {
	q := listview.Query[models.Project]{
		Search: r.URL.Query().Get("search"),
		SearchFields: []func(models.Project) string{
			func(p models.Project) string { return p.Name },
			func(p models.Project) string { return p.JobNumber },
			func(p models.Project) string { return p.CustomerName() },
			func(p models.Project) string { return p.Location },
		},
		Comparators: map[string]listview.Comparator[models.Project]{
			"name":      listview.ByString(func(p models.Project) string { return p.Name }),
			"jobNumber": listview.ByString(func(p models.Project) string { return p.JobNumber }),
			"customer":  listview.ByString(func(p models.Project) string { return p.CustomerName() }),
			"status":    listview.ByString(func(p models.Project) string { return p.Status }),
			"budget":    listview.ByNumber(func(p models.Project) float64 { return p.Budget }),
			"startDate": listview.ByTime(func(p models.Project) time.Time { return p.StartDate.Time() }),
		},
	}

	if status := r.URL.Query().Get("status"); status != "" {
		q.Filters = append(q.Filters, func(p models.Project) bool { return p.Status == status })
	} else if r.URL.Query().Get("include_archived") != "true" {
		// Archived projects are hidden unless asked for by status or flag.
		q.Filters = append(q.Filters, func(p models.Project) bool { return p.Status != models.ProjectArchived })
	}
	if priority := r.URL.Query().Get("priority"); priority != "" {
		q.Filters = append(q.Filters, func(p models.Project) bool { return p.Priority == priority })
	}
	if cust := r.URL.Query().Get("customer_id"); cust != "" {
		if custID, err := uuid.Parse(cust); err == nil {
			q.Filters = append(q.Filters, func(p models.Project) bool { return p.CustomerID == custID })
		}
	}

	if key := r.URL.Query().Get("sort_key"); key != "" {
		dir := listview.Asc
		if r.URL.Query().Get("sort_dir") == "desc" {
			dir = listview.Desc
		}
		q.Sort = listview.SortSpec{Key: key, Direction: dir}
	}
	return q
}

func loadProjects(db *gorm.DB) ([]models.Project, error) {
	var projects []models.Project
	err := db.Preload("Customer").
		Preload("Assignments", "is_active = ?", true).
		Preload("Assignments.User").
		Order("created_at desc").
		Find(&projects).Error
	return projects, err
}

func GetProjects(w http.ResponseWriter, r *http.Request) {
	db, ok := database(w)
	if !ok {
		return
	}

	projects, err := loadProjects(db)
	if err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	writeJSON(w, http.StatusOK, listview.Derive(projects, projectQuery(r)))
}

func GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var p models.Project
	err = db.Preload("Customer").
		Preload("Assignments", "is_active = ?", true).
		Preload("Assignments.User").
		First(&p, "id = ?", id).Error
	if err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func CreateProject(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := models.ValidateProjectInput(&p); len(fields) > 0 {
		writeError(w, apperr.Validation(fields))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var customer models.Customer
	if err := db.First(&customer, "id = ?", p.CustomerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			writeError(w, apperr.Validation(map[string]string{"customerId": "Customer not found"}))
			return
		}
		writeError(w, apperr.FromDB(err))
		return
	}

	p.ID = uuid.Nil
	if p.Status == "" {
		p.Status = models.ProjectPending
	}
	if p.Priority == "" {
		p.Priority = models.PriorityMedium
	}
	if claims := middleware.GetClaims(r); claims != nil {
		p.CreatedBy = claims.Email
	}
	if err := db.Create(&p).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeError(w, apperr.Validation(map[string]string{"jobNumber": "Job number already exists"}))
			return
		}
		writeError(w, apperr.FromDB(err))
		return
	}

	db.Preload("Customer").First(&p, "id = ?", p.ID)
	writeJSON(w, http.StatusCreated, p)
}

func UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var existing models.Project
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}

	var p models.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if fields := models.ValidateProjectInput(&p); len(fields) > 0 {
		writeError(w, apperr.Validation(fields))
		return
	}

	p.ID = existing.ID
	p.CreatedBy = existing.CreatedBy
	if p.Status == "" {
		p.Status = existing.Status
	}
	if p.Priority == "" {
		p.Priority = existing.Priority
	}
	if err := db.Model(&existing).Select(
		"name", "job_number", "customer_id", "status", "priority",
		"budget", "spent", "start_date", "end_date", "location",
		"contact_person", "contact_phone", "contact_email", "description",
	).Updates(&p).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeError(w, apperr.Validation(map[string]string{"jobNumber": "Job number already exists"}))
			return
		}
		writeError(w, apperr.FromDB(err))
		return
	}

	db.Preload("Customer").First(&existing, "id = ?", id)
	writeJSON(w, http.StatusOK, existing)
}

type projectStatusReq struct {
	Status string `json:"status"`
}

// UpdateProjectStatus writes the status field alone. Archiving goes through
// here; no endpoint deletes a project row.
func UpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	var req projectStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if !models.IsValidProjectStatus(req.Status) {
		writeError(w, apperr.Validation(map[string]string{"status": "Unknown project status"}))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	if appErr := setProjectStatus(db, id, req.Status); appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Status updated", "status": req.Status})
}

// ArchiveProject is the single-row form of the archive bulk action.
func ArchiveProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}
	if appErr := setProjectStatus(db, id, models.ProjectArchived); appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Project archived"})
}

func setProjectStatus(db *gorm.DB, id uuid.UUID, status string) *apperr.Error {
	res := db.Model(&models.Project{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return apperr.FromDB(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "project not found")
	}
	return nil
}

type bulkStatusReq struct {
	IDs    []uuid.UUID `json:"ids"`
	Status string      `json:"status"`
}

// BulkUpdateProjectStatus applies one status to many projects, one at a
// time, stopping at the first failure.
func BulkUpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "no ids given", http.StatusBadRequest)
		return
	}
	if !models.IsValidProjectStatus(req.Status) {
		writeError(w, apperr.Validation(map[string]string{"status": "Unknown project status"}))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	result := runSequential(req.IDs, func(id uuid.UUID) *apperr.Error {
		return setProjectStatus(db, id, req.Status)
	})
	writeJSON(w, http.StatusOK, result)
}

// BulkArchiveProjects is bulk status with the status pinned to archived.
func BulkArchiveProjects(w http.ResponseWriter, r *http.Request) {
	var req bulkIDsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.IDs) == 0 {
		http.Error(w, "no ids given", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	result := runSequential(req.IDs, func(id uuid.UUID) *apperr.Error {
		return setProjectStatus(db, id, models.ProjectArchived)
	})
	writeJSON(w, http.StatusOK, result)
}

type assignUserReq struct {
	UserID uuid.UUID `json:"userId"`
}

// AssignUserToProject links a profile to a project, reactivating a prior
// assignment if one exists.
func AssignUserToProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}

	var req assignUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.UserID == uuid.Nil {
		writeError(w, apperr.Validation(map[string]string{"userId": "User selection is required"}))
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	var project models.Project
	if err := db.First(&project, "id = ?", projectID).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}
	var profile models.UserProfile
	if err := db.First(&profile, "id = ?", req.UserID).Error; err != nil {
		writeError(w, apperr.FromDB(err))
		return
	}

	var existing models.ProjectAssignment
	err = db.First(&existing, "project_id = ? AND user_id = ?", projectID, req.UserID).Error
	switch {
	case err == nil:
		if err := db.Model(&existing).Update("is_active", true).Error; err != nil {
			writeError(w, apperr.FromDB(err))
			return
		}
		writeJSON(w, http.StatusOK, existing)
	case err == gorm.ErrRecordNotFound:
		assignment := models.ProjectAssignment{ProjectID: projectID, UserID: req.UserID, IsActive: true}
		if err := db.Create(&assignment).Error; err != nil {
			writeError(w, apperr.FromDB(err))
			return
		}
		writeJSON(w, http.StatusCreated, assignment)
	default:
		writeError(w, apperr.FromDB(err))
	}
}

// UnassignUserFromProject deactivates the assignment; the row stays for
// history.
func UnassignUserFromProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid project id", http.StatusBadRequest)
		return
	}
	userID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	db, ok := database(w)
	if !ok {
		return
	}

	res := db.Model(&models.ProjectAssignment{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("is_active", false)
	if res.Error != nil {
		writeError(w, apperr.FromDB(res.Error))
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, apperr.New(apperr.NotFound, "assignment not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "User unassigned"})
}
