package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the authenticated identity plus the application profile fields
// (role, credit balances, display name). A profile row is created at signup;
// credit balances are adjusted by an external billing trigger, never here.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:128" json:"full_name"`
	Role         Role      `gorm:"size:16;not null;default:user" json:"role"`
	CreditsCV    int       `gorm:"not null;default:0" json:"credits_cv"`
	CreditsChat  int       `gorm:"not null;default:0" json:"credits_chat"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
