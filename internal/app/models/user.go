package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Username     string    `json:"username" db:"username" example:"johndoe"`
	Email        string    `json:"email" db:"email" example:"john@example.com"` // Always stored lower-cased
	FullName     string    `json:"fullName" db:"full_name" example:"John Doe"`
	PhoneNumber  string    `json:"phoneNumber" db:"phone_number" example:"+15551234567"`
	Password     string    `json:"-" db:"password"` // argon2id hash, never serialized
	ProfilePhoto string    `json:"profilePhoto" db:"profile_photo" example:"profile-3f1c.png"`
	CoverPhoto   string    `json:"coverPhoto" db:"cover_photo" example:"cover-9ab2.png"`
	Role         Role      `json:"role" db:"role" example:"USER"`
	Sex          Sex       `json:"sex" db:"sex" example:"MALE"`
	IsActive     bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Courses     []Course     `json:"courses,omitempty"`
	Enrollments []Enrollment `json:"enrollments,omitempty"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
