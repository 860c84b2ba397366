package models

import "time"

// Enrollment links a user to a course
type Enrollment struct {
	ID         int64            `json:"id" db:"id"`
	UserID     int64            `json:"userId" db:"user_id"`
	CourseID   int64            `json:"courseId" db:"course_id"`
	Progress   int              `json:"progress" db:"progress"`
	Status     EnrollmentStatus `json:"status" db:"status"`
	IsEnrolled bool             `json:"isEnrolled" db:"is_enrolled"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`

	Course *Course `json:"course,omitempty"`
}
