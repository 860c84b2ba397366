package models

import "time"

// Payment records a purchase of a course. No gateway is involved.
type Payment struct {
	ID        string    `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
