package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project statuses. Archive is a status write, not a delete: no handler
// removes a project row.
const (
	ProjectPending   = "pending"
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectOnHold    = "on-hold"
	ProjectArchived  = "archived"
)

// ProjectStatuses lists every assignable status.
var ProjectStatuses = []string{ProjectPending, ProjectActive, ProjectCompleted, ProjectOnHold, ProjectArchived}

// Project priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ProjectPriorities lists every assignable priority.
var ProjectPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// IsValidProjectStatus reports whether status is assignable.
func IsValidProjectStatus(status string) bool {
	for _, s := range ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidProjectPriority reports whether priority is assignable.
func IsValidProjectPriority(priority string) bool {
	for _, p := range ProjectPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

// Customer is referenced by projects, not owned by them.
type Customer struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	ContactPerson string    `gorm:"size:100" json:"contactPerson,omitempty"`
	ContactEmail  string    `gorm:"size:100" json:"contactEmail,omitempty"`
	ContactPhone  string    `gorm:"size:20" json:"contactPhone,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Customer) TableName() string {
	return "customers"
}

// Project is one construction job.
type Project struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null;index" json:"name"`
	JobNumber  string    `gorm:"size:50;uniqueIndex;not null" json:"jobNumber"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customerId"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Status   string `gorm:"size:50;not null;default:'pending';index" json:"status"`
	Priority string `gorm:"size:50;not null;default:'medium'" json:"priority"`

	Budget float64 `gorm:"type:decimal(15,2);default:0" json:"budget"`
	// Spent is informational only; nothing derives it from the stock
	// transaction log.
	Spent float64 `gorm:"type:decimal(15,2);default:0" json:"spent"`

	StartDate JSONTime  `gorm:"not null" json:"startDate"`
	EndDate   *JSONTime `json:"endDate,omitempty"` // nil = ongoing

	Location      string `gorm:"size:255" json:"location,omitempty"`
	ContactPerson string `gorm:"size:100" json:"contactPerson,omitempty"`
	ContactPhone  string `gorm:"size:20" json:"contactPhone,omitempty"`
	ContactEmail  string `gorm:"size:100" json:"contactEmail,omitempty"`
	Description   string `gorm:"type:text" json:"description,omitempty"`

	CreatedBy string    `gorm:"size:255" json:"createdBy,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Assignments []ProjectAssignment `gorm:"foreignKey:ProjectID" json:"assignments,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// CustomerName is a nil-safe accessor for list derivation and export.
func (p Project) CustomerName() string {
	if p.Customer == nil {
		return ""
	}
	return p.Customer.Name
}

// ProjectAssignment links a profile to a project.
type ProjectAssignment struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"projectId"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"userId"`
	User         *UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AssignedDate time.Time    `gorm:"autoCreateTime" json:"assignedDate"`
	IsActive     bool         `gorm:"default:true" json:"isActive"`
}

func (ProjectAssignment) TableName() string {
	return "project_assignments"
}

var emailPattern = func(s string) bool {
	at := strings.Index(s, "@")
	dot := strings.LastIndex(s, ".")
	return at > 0 && dot > at+1 && dot < len(s)-1 && !strings.ContainsAny(s, " \t")
}

// ValidateProjectInput checks a project create/edit payload and returns one
// message per offending field; all rules run together.
func ValidateProjectInput(p *Project) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "Project name is required"
	}
	if strings.TrimSpace(p.JobNumber) == "" {
		errs["jobNumber"] = "Job number is required"
	}
	if p.CustomerID == uuid.Nil {
		errs["customerId"] = "Customer selection is required"
	}
	if p.Budget <= 0 {
		errs["budget"] = "Valid budget amount is required"
	}
	if p.StartDate.IsZero() {
		errs["startDate"] = "Start date is required"
	}
	if p.EndDate != nil && !p.EndDate.IsZero() && !p.StartDate.IsZero() &&
		!p.EndDate.Time().After(p.StartDate.Time()) {
		errs["endDate"] = "End date must be after start date"
	}
	if strings.TrimSpace(p.Location) == "" {
		errs["location"] = "Project location is required"
	}
	if strings.TrimSpace(p.ContactPerson) == "" {
		errs["contactPerson"] = "Contact person is required"
	}
	if strings.TrimSpace(p.ContactPhone) == "" {
		errs["contactPhone"] = "Contact phone is required"
	}
	if p.ContactEmail != "" && !emailPattern(p.ContactEmail) {
		errs["contactEmail"] = "Valid email address is required"
	}
	if p.Status != "" && !IsValidProjectStatus(p.Status) {
		errs["status"] = "Unknown project status"
	}
	if p.Priority != "" && !IsValidProjectPriority(p.Priority) {
		errs["priority"] = "Unknown project priority"
	}

	return errs
}
