package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/helpers"
)

// CourseService defines the operations on courses, chapters and lessons
type CourseService interface {
	CreateCourse(ctx context.Context, actor *auth.Principal, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, courseID int64) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error)
	UpdateCourse(ctx context.Context, actor *auth.Principal, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, actor *auth.Principal, courseID int64) error
	AddChapter(ctx context.Context, actor *auth.Principal, courseID int64, req *dto.CreateChapterRequest) (*dto.ChapterResponse, error)
	AddLesson(ctx context.Context, actor *auth.Principal, courseID, chapterID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(store repositories.Store, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		store:  store,
		logger: logger,
	}
}

// CreateCourse stores a course owned by the actor. Only instructors and admins may create courses.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, actor *auth.Principal, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if err := auth.Authorize(actor, auth.CourseManagers); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError(msgMissingFields)
	}

	course := &models.Course{
		UserID:           actor.UserID,
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		CourseImg:        req.CourseImg,
		CoverImg:         req.CoverImg,
		PreviewCourseURL: req.PreviewCourseURL,
		IsPublished:      req.IsPublished,
		Price:            req.Price,
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Users().GetByID(ctx, actor.UserID); err != nil {
			return err
		}
		return tx.Courses().Create(ctx, course)
	})
	if err != nil {
		if !apperrors.NotFound(err) {
			s.logger.Error().Err(err).Int64("userID", actor.UserID).Msg("Failed to create course")
		}
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Int64("userID", actor.UserID).Msg("Course created")
	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// GetCourse returns a course with its chapters and lessons
func (s *courseServiceImpl) GetCourse(ctx context.Context, courseID int64) (*dto.CourseResponse, error) {
	course, err := s.store.Courses().GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	courses := []models.Course{*course}
	if err := attachCourseTree(ctx, s.store, courses); err != nil {
		return nil, err
	}
	resp := dto.NewCourseResponse(&courses[0])
	return &resp, nil
}

// ListCourses returns one page of courses
func (s *courseServiceImpl) ListCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error) {
	p := helpers.NewPage(page, size)

	courses, total, err := s.store.Courses().List(ctx, p.Offset(), p.Size)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	resp := &dto.CourseListResponse{
		Courses:    make([]dto.CourseResponse, 0, len(courses)),
		Pagination: p.Info(total),
	}
	for i := range courses {
		resp.Courses = append(resp.Courses, dto.NewCourseResponse(&courses[i]))
	}
	return resp, nil
}

// ownedCourse loads a course and checks that the actor owns it or is an admin
func (s *courseServiceImpl) ownedCourse(ctx context.Context, store repositories.Store, actor *auth.Principal, courseID int64) (*models.Course, error) {
	if err := auth.Authorize(actor, auth.CourseManagers); err != nil {
		return nil, err
	}
	course, err := store.Courses().GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeSelfOr(actor, course.UserID, auth.AdminOnly); err != nil {
		return nil, err
	}
	return course, nil
}

// UpdateCourse edits a course. Empty image fields keep the current images.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, actor *auth.Principal, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError(msgMissingFields)
	}

	course, err := s.ownedCourse(ctx, s.store, actor, req.CourseID)
	if err != nil {
		return nil, err
	}

	course.Title = strings.TrimSpace(req.Title)
	course.Description = req.Description
	course.PreviewCourseURL = req.PreviewCourseURL
	course.IsPublished = req.IsPublished
	course.Price = req.Price
	if req.CourseImg != "" {
		course.CourseImg = req.CourseImg
	}
	if req.CoverImg != "" {
		course.CoverImg = req.CoverImg
	}

	if err := s.store.Courses().Update(ctx, course); err != nil {
		if !apperrors.NotFound(err) {
			s.logger.Error().Err(err).Int64("courseID", course.ID).Msg("Failed to update course")
		}
		return nil, err
	}

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// DeleteCourse removes a course with its enrollments, payments, lessons and chapters
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, actor *auth.Principal, courseID int64) error {
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := s.ownedCourse(ctx, tx, actor, courseID); err != nil {
			return err
		}
		ids := []int64{courseID}

		if _, err := tx.Enrollments().DeleteByUserOrCourses(ctx, 0, ids); err != nil {
			return fmt.Errorf("error deleting enrollments: %w", err)
		}
		if _, err := tx.Payments().DeleteByUserOrCourses(ctx, 0, ids); err != nil {
			return fmt.Errorf("error deleting payments: %w", err)
		}
		if _, err := tx.Courses().DeleteLessonsByCourseIDs(ctx, ids); err != nil {
			return fmt.Errorf("error deleting lessons: %w", err)
		}
		if _, err := tx.Courses().DeleteChaptersByCourseIDs(ctx, ids); err != nil {
			return fmt.Errorf("error deleting chapters: %w", err)
		}
		n, err := tx.Courses().DeleteByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}
		if n == 0 {
			return apperrors.ErrCourseNotFound
		}
		return nil
	})
	if err != nil {
		if !apperrors.NotFound(err) && !apperrors.Is(err, apperrors.ErrPermissionDenied) {
			s.logger.Error().Err(err).Int64("courseID", courseID).Msg("Failed to delete course")
		}
		return err
	}

	s.logger.Info().Int64("courseID", courseID).Int64("actorID", actor.UserID).Msg("Course deleted")
	return nil
}

// AddChapter appends a chapter to a course owned by the actor
func (s *courseServiceImpl) AddChapter(ctx context.Context, actor *auth.Principal, courseID int64, req *dto.CreateChapterRequest) (*dto.ChapterResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError(msgMissingFields)
	}
	if _, err := s.ownedCourse(ctx, s.store, actor, courseID); err != nil {
		return nil, err
	}

	chapter := &models.Chapter{
		CourseID: courseID,
		Title:    strings.TrimSpace(req.Title),
		Position: req.Position,
	}
	if err := s.store.Courses().CreateChapter(ctx, chapter); err != nil {
		s.logger.Error().Err(err).Int64("courseID", courseID).Msg("Failed to create chapter")
		return nil, err
	}

	resp := dto.NewChapterResponse(chapter)
	return &resp, nil
}

// AddLesson appends a lesson to a chapter. The chapter must belong to the course.
func (s *courseServiceImpl) AddLesson(ctx context.Context, actor *auth.Principal, courseID, chapterID int64, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError(msgMissingFields)
	}
	if _, err := s.ownedCourse(ctx, s.store, actor, courseID); err != nil {
		return nil, err
	}

	chapter, err := s.store.Courses().GetChapterByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if chapter.CourseID != courseID {
		return nil, apperrors.ErrChapterNotFound
	}

	lesson := &models.Lesson{
		ChapterID: chapterID,
		CourseID:  courseID,
		Title:     strings.TrimSpace(req.Title),
		VideoURL:  req.VideoURL,
		Position:  req.Position,
	}
	if err := s.store.Courses().CreateLesson(ctx, lesson); err != nil {
		s.logger.Error().Err(err).Int64("chapterID", chapterID).Msg("Failed to create lesson")
		return nil, err
	}

	resp := dto.NewLessonResponse(lesson)
	return &resp, nil
}
