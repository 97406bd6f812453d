package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role names understood by the permission checks
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleUser    = "USER"
)

// Role represents a named permission profile that can be attached to users
type Role struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"` // ADMIN, MANAGER, USER
	Description *string        `json:"description"`
	Permissions datatypes.JSON `json:"permissions"` // free-form permission flags
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// User represents an account that can reserve, borrow and inspect devices
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Auth0ID    string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Username   string         `gorm:"uniqueIndex;not null" json:"username"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	IsStaff    bool           `gorm:"not null;default:false" json:"is_staff"`
	RoleID     *uint          `gorm:"index" json:"role_id"` // nil means no role profile: treated as unprivileged
	Role       *Role          `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Phone      *string        `json:"phone"`
	Department *string        `json:"department"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user's role profile carries one of the
// given role names. A user without a role profile never matches.
func (u *User) HasRole(names ...string) bool {
	if u.Role == nil {
		return false
	}
	for _, name := range names {
		if u.Role.Name == name {
			return true
		}
	}
	return false
}

// IsManagerOrAdmin reports whether the user may operate the loan,
// return and service workflows. Staff accounts always qualify.
func (u *User) IsManagerOrAdmin() bool {
	if u.IsStaff {
		return true
	}
	return u.HasRole(RoleManager, RoleAdmin)
}
