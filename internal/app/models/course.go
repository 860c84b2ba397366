package models

import "time"

// Course represents a course published by an instructor or admin.
type Course struct {
	ID               int64     `json:"id" db:"id"`
	UserID           int64     `json:"userId" db:"user_id"` // Owner (creator)
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	CourseImg        string    `json:"courseImg" db:"course_img"`
	CoverImg         string    `json:"coverImg" db:"cover_img"`
	PreviewCourseURL string    `json:"previewCourseUrl" db:"preview_course_url"`
	IsPublished      bool      `json:"isPublished" db:"is_published"`
	Price            float64   `json:"price" db:"price"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Chapters []Chapter `json:"chapters,omitempty"`
}

// Chapter groups lessons of a course.
type Chapter struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Lessons []Lesson `json:"lessons,omitempty"`
}

// Lesson is a single video unit inside a chapter.
type Lesson struct {
	ID        int64     `json:"id" db:"id"`
	ChapterID int64     `json:"chapterId" db:"chapter_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	VideoURL  string    `json:"videoUrl" db:"video_url"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
