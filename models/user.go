// models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application roles. Role gates which navigation and management actions a
// profile may use; see utils.RolePermissions for the capability table.
const (
	RoleSuperAdmin     = "super_admin"
	RoleProjectManager = "project_manager"
	RoleWorker         = "worker"
)

// ValidRoles lists every assignable role.
var ValidRoles = []string{RoleSuperAdmin, RoleProjectManager, RoleWorker}

// IsValidRole reports whether role is one of the assignable roles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User holds the authentication identity: credentials only. Everything the
// back office displays about a person lives on UserProfile, which shares the
// same ID and is loaded as a second, separate step after the token is
// validated.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Profile *UserProfile `gorm:"foreignKey:ID;references:ID" json:"profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// UserProfile is the extended identity record. Its primary key equals the
// auth identity's ID. A user whose token is valid but whose profile row has
// not been loaded yet is in the "authenticated, no profile" state and
// consumers must render that deliberately.
type UserProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `gorm:"size:100;not null" json:"fullName"`
	Role      string    `gorm:"size:50;not null;default:'worker';index" json:"role"`
	Phone     string    `gorm:"size:15" json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
