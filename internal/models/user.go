package models

import (
	"time"
)

// User represents a staff account: admin, department manager or security.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"user_id"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `gorm:"not null;index" json:"role"`
	Designation  string    `json:"designation"`
	DepartmentID uint      `gorm:"index" json:"department_id"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Status       string    `gorm:"default:active" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "vms_users"
}

// Role constants
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleSecurity = "security"
)

// ValidRole reports whether role is one of the accepted staff roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSecurity:
		return true
	}
	return false
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserResponse is the JSON response format for users
type UserResponse struct {
	UserID       uint      `json:"user_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	Designation  string    `json:"designation"`
	DepartmentID uint      `json:"department_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UserID:       u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		Designation:  u.Designation,
		DepartmentID: u.DepartmentID,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
	}
}
