package models

import "github.com/google/uuid"

// User represents a back-office account.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex" json:"email"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserRole grants a named role to a user. The admin area checks for the
// "admin" role; other role strings are stored but carry no behavior.
type UserRole struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Role   string    `gorm:"index" json:"role"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// RoleAdmin is the only role string the middleware gives meaning to.
const RoleAdmin = "admin"
