package model

import (
	"time"
)

type AdminRole string

const (
	RoleAdmin      AdminRole = "Admin"
	RoleSuperAdmin AdminRole = "SuperAdmin"
	RoleSupport    AdminRole = "Support"
)

// Admin is a back-office account. Token and TokenExpiry are set together at
// login and cleared together; a token authenticates only while TokenExpiry
// is in the future.
type Admin struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"` // stored lowercase
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         AdminRole  `gorm:"type:varchar(20);default:'Admin'" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	Token        *string    `gorm:"index" json:"-"`
	TokenExpiry  *time.Time `json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// Profile is the public projection of an admin returned by the API.
type Profile struct {
	ID    uint      `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  AdminRole `json:"role"`
}

func (a *Admin) Profile() Profile {
	return Profile{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}
