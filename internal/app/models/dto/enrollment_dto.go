package dto

import (
	"time"

	"github.com/yigit/coursehub/internal/app/models"
)

// CreateEnrollmentRequest enrolls a user into a course
type CreateEnrollmentRequest struct {
	UserID     int64  `json:"userId" binding:"required,min=1"`
	CourseID   int64  `json:"courseId" binding:"required,min=1"`
	Progress   int    `json:"progress" binding:"gte=0,lte=100"`
	Status     string `json:"status" binding:"omitempty,enrollment_status"`
	IsEnrolled bool   `json:"isEnrolled"`
}

// UpdateEnrollmentRequest changes progress or status. Nil fields are left untouched.
type UpdateEnrollmentRequest struct {
	EnrollmentID int64   `json:"enrollmentId" binding:"required,min=1"`
	Progress     *int    `json:"progress" binding:"omitempty,gte=0,lte=100"`
	Status       *string `json:"status" binding:"omitempty,enrollment_status"`
	IsEnrolled   *bool   `json:"isEnrolled"`
}

// EnrollmentResponse represents an enrollment and, when loaded, its course
type EnrollmentResponse struct {
	ID         int64                   `json:"id"`
	UserID     int64                   `json:"userId"`
	CourseID   int64                   `json:"courseId"`
	Progress   int                     `json:"progress" example:"40"`
	Status     models.EnrollmentStatus `json:"status" example:"ACTIVE"`
	IsEnrolled bool                    `json:"isEnrolled"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
	Course     *CourseResponse         `json:"course,omitempty"`
}

// NewEnrollmentResponse converts an enrollment
func NewEnrollmentResponse(e *models.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		CourseID:   e.CourseID,
		Progress:   e.Progress,
		Status:     e.Status,
		IsEnrolled: e.IsEnrolled,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.Course != nil {
		course := NewCourseResponse(e.Course)
		resp.Course = &course
	}
	return resp
}
