package dto

import (
	"time"

	"github.com/yigit/coursehub/internal/app/models"
)

// CreateCourseRequest carries a new course. Image fields hold stored filenames
// after upload processing, or a data URI as sent by the client.
type CreateCourseRequest struct {
	Title            string  `json:"title" form:"title" binding:"required,max=255"`
	Description      string  `json:"description" form:"description"`
	PreviewCourseURL string  `json:"previewCourseUrl" form:"previewCourseUrl" binding:"omitempty,url"`
	IsPublished      bool    `json:"isPublished" form:"isPublished"`
	Price            float64 `json:"price" form:"price" binding:"gte=0"`
	CourseImg        string  `json:"courseImg" form:"-"`
	CoverImg         string  `json:"coverImg" form:"-"`
}

// UpdateCourseRequest edits an existing course. Empty image fields keep the current images.
type UpdateCourseRequest struct {
	CourseID         int64   `json:"courseId" form:"courseId" binding:"required,min=1"`
	Title            string  `json:"title" form:"title" binding:"required,max=255"`
	Description      string  `json:"description" form:"description"`
	PreviewCourseURL string  `json:"previewCourseUrl" form:"previewCourseUrl" binding:"omitempty,url"`
	IsPublished      bool    `json:"isPublished" form:"isPublished"`
	Price            float64 `json:"price" form:"price" binding:"gte=0"`
	CourseImg        string  `json:"courseImg" form:"-"`
	CoverImg         string  `json:"coverImg" form:"-"`
}

// CreateChapterRequest adds a chapter to a course
type CreateChapterRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Position int    `json:"position" binding:"gte=0"`
}

// CreateLessonRequest adds a lesson to a chapter
type CreateLessonRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	VideoURL string `json:"videoUrl" binding:"omitempty,url"`
	Position int    `json:"position" binding:"gte=0"`
}

// LessonResponse represents a lesson
type LessonResponse struct {
	ID        int64  `json:"id"`
	ChapterID int64  `json:"chapterId"`
	Title     string `json:"title"`
	VideoURL  string `json:"videoUrl"`
	Position  int    `json:"position"`
}

// ChapterResponse represents a chapter with its lessons
type ChapterResponse struct {
	ID       int64            `json:"id"`
	CourseID int64            `json:"courseId"`
	Title    string           `json:"title"`
	Position int              `json:"position"`
	Lessons  []LessonResponse `json:"lessons"`
}

// CourseResponse represents a course and, when loaded, its chapters
type CourseResponse struct {
	ID               int64             `json:"id" example:"1"`
	UserID           int64             `json:"userId" example:"2"`
	Title            string            `json:"title" example:"Go for backend developers"`
	Description      string            `json:"description"`
	CourseImg        string            `json:"courseImg"`
	CoverImg         string            `json:"coverImg"`
	PreviewCourseURL string            `json:"previewCourseUrl"`
	IsPublished      bool              `json:"isPublished"`
	Price            float64           `json:"price" example:"49.99"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	Chapters         []ChapterResponse `json:"chapters,omitempty"`
}

// CourseListResponse is one page of courses
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// NewLessonResponse converts a lesson
func NewLessonResponse(l *models.Lesson) LessonResponse {
	return LessonResponse{
		ID:        l.ID,
		ChapterID: l.ChapterID,
		Title:     l.Title,
		VideoURL:  l.VideoURL,
		Position:  l.Position,
	}
}

// NewChapterResponse converts a chapter and its lessons
func NewChapterResponse(ch *models.Chapter) ChapterResponse {
	resp := ChapterResponse{
		ID:       ch.ID,
		CourseID: ch.CourseID,
		Title:    ch.Title,
		Position: ch.Position,
		Lessons:  make([]LessonResponse, 0, len(ch.Lessons)),
	}
	for i := range ch.Lessons {
		resp.Lessons = append(resp.Lessons, NewLessonResponse(&ch.Lessons[i]))
	}
	return resp
}

// NewCourseResponse converts a course, including chapters if loaded
func NewCourseResponse(c *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:               c.ID,
		UserID:           c.UserID,
		Title:            c.Title,
		Description:      c.Description,
		CourseImg:        c.CourseImg,
		CoverImg:         c.CoverImg,
		PreviewCourseURL: c.PreviewCourseURL,
		IsPublished:      c.IsPublished,
		Price:            c.Price,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	for i := range c.Chapters {
		resp.Chapters = append(resp.Chapters, NewChapterResponse(&c.Chapters[i]))
	}
	return resp
}
