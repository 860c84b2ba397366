package dto

import (
	"time"

	"github.com/yigit/coursehub/internal/app/models"
)

// RegisterRequest carries the registration form. Image fields are not form-bound
// since multipart clients send them as file parts; they hold stored filenames once
// the controller has processed the uploads.
type RegisterRequest struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	FullName        string `json:"fullName" form:"fullName"`
	PhoneNumber     string `json:"phoneNumber" form:"phoneNumber"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	Sex             string `json:"sex" form:"sex" binding:"omitempty,sex"`
	ProfileImage    string `json:"profilePhoto" form:"-"` // data URI fallback
	CoverImage      string `json:"coverPhoto" form:"-"`   // data URI fallback
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UpdateUserRequest carries a profile edit. Empty image fields keep the current images.
type UpdateUserRequest struct {
	UserID       int64  `json:"userId" form:"userId" binding:"required,min=1"`
	Username     string `json:"username" form:"username"`
	Email        string `json:"email" form:"email"`
	FullName     string `json:"fullName" form:"fullName"`
	PhoneNumber  string `json:"phoneNumber" form:"phoneNumber"`
	Password     string `json:"password" form:"password"`
	ProfileImage string `json:"profilePhoto" form:"-"`
	CoverImage   string `json:"coverPhoto" form:"-"`
}

// UpdateRoleRequest changes the role of the user owning Email
type UpdateRoleRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role" binding:"required,role"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType" example:"Bearer"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UserResponse is the sanitized view of a user. It has no password field.
type UserResponse struct {
	ID           int64                `json:"id" example:"1"`
	Username     string               `json:"username" example:"johndoe"`
	Email        string               `json:"email" example:"john@example.com"`
	FullName     string               `json:"fullName" example:"John Doe"`
	PhoneNumber  string               `json:"phoneNumber" example:"+15551234567"`
	ProfilePhoto string               `json:"profilePhoto" example:"profile-3f1c.png"`
	CoverPhoto   string               `json:"coverPhoto" example:"cover-9ab2.png"`
	Role         models.Role          `json:"role" example:"USER"`
	Sex          models.Sex           `json:"sex" example:"MALE"`
	IsActive     bool                 `json:"isActive" example:"true"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	Courses      []CourseResponse     `json:"courses,omitempty"`
	Enrollments  []EnrollmentResponse `json:"enrollments,omitempty"`
}

// AuthResponse is returned by login
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// NewUserResponse converts a model into its sanitized form, including loaded relations
func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		PhoneNumber:  u.PhoneNumber,
		ProfilePhoto: u.ProfilePhoto,
		CoverPhoto:   u.CoverPhoto,
		Role:         u.Role,
		Sex:          u.Sex,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	for i := range u.Courses {
		resp.Courses = append(resp.Courses, NewCourseResponse(&u.Courses[i]))
	}
	for i := range u.Enrollments {
		resp.Enrollments = append(resp.Enrollments, NewEnrollmentResponse(&u.Enrollments[i]))
	}
	return resp
}

// NewUserListResponse sanitizes a list of users
func NewUserListResponse(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
