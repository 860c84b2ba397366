package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// EnrollmentService defines the operations on enrollments
type EnrollmentService interface {
	CreateEnrollment(ctx context.Context, actor *auth.Principal, req *dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error)
	ListMyEnrollments(ctx context.Context, actor *auth.Principal) ([]dto.EnrollmentResponse, error)
	UpdateEnrollment(ctx context.Context, actor *auth.Principal, req *dto.UpdateEnrollmentRequest) (*dto.EnrollmentResponse, error)
	DeleteEnrollment(ctx context.Context, actor *auth.Principal, enrollmentID int64) error
}

// enrollmentServiceImpl implements EnrollmentService
type enrollmentServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(store repositories.Store, logger zerolog.Logger) EnrollmentService {
	return &enrollmentServiceImpl{
		store:  store,
		logger: logger,
	}
}

func validProgress(p int) bool {
	return p >= 0 && p <= 100
}

// CreateEnrollment enrolls a user into a course. A second enrollment into the same course is a conflict.
func (s *enrollmentServiceImpl) CreateEnrollment(ctx context.Context, actor *auth.Principal, req *dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	if req.UserID <= 0 || req.CourseID <= 0 {
		return nil, apperrors.NewValidationError(msgMissingFields)
	}
	if !validProgress(req.Progress) {
		return nil, apperrors.NewValidationError("progress must be between 0 and 100")
	}
	status := models.EnrollmentPending
	if req.Status != "" {
		parsed, ok := models.ParseEnrollmentStatus(req.Status)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown enrollment status %q", req.Status))
		}
		status = parsed
	}
	if err := auth.AuthorizeSelfOr(actor, req.UserID, auth.AdminOnly); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		UserID:     req.UserID,
		CourseID:   req.CourseID,
		Progress:   req.Progress,
		Status:     status,
		IsEnrolled: req.IsEnrolled,
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if _, err := tx.Users().GetByID(ctx, req.UserID); err != nil {
			return err
		}
		course, err := tx.Courses().GetByID(ctx, req.CourseID)
		if err != nil {
			return err
		}
		if err := tx.Enrollments().Create(ctx, enrollment); err != nil {
			return err
		}
		enrollment.Course = course
		return nil
	})
	if err != nil {
		if !apperrors.NotFound(err) && !apperrors.Duplicate(err) {
			s.logger.Error().Err(err).Int64("userID", req.UserID).Int64("courseID", req.CourseID).Msg("Failed to create enrollment")
		}
		return nil, err
	}

	s.logger.Info().Int64("enrollmentID", enrollment.ID).Int64("userID", enrollment.UserID).Int64("courseID", enrollment.CourseID).Msg("Enrollment created")
	resp := dto.NewEnrollmentResponse(enrollment)
	return &resp, nil
}

// ListMyEnrollments returns the actor's enrollments with their courses
func (s *enrollmentServiceImpl) ListMyEnrollments(ctx context.Context, actor *auth.Principal) ([]dto.EnrollmentResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	enrollments, err := s.store.Enrollments().ListByUserIDs(ctx, []int64{actor.UserID})
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	if err := attachEnrollmentCourses(ctx, s.store, enrollments, false); err != nil {
		return nil, err
	}
	out := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		out = append(out, dto.NewEnrollmentResponse(&enrollments[i]))
	}
	return out, nil
}

// UpdateEnrollment changes progress, status or the enrolled flag
func (s *enrollmentServiceImpl) UpdateEnrollment(ctx context.Context, actor *auth.Principal, req *dto.UpdateEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	enrollment, err := s.store.Enrollments().GetByID(ctx, req.EnrollmentID)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeSelfOr(actor, enrollment.UserID, auth.AdminOnly); err != nil {
		return nil, err
	}

	if req.Progress != nil {
		if !validProgress(*req.Progress) {
			return nil, apperrors.NewValidationError("progress must be between 0 and 100")
		}
		enrollment.Progress = *req.Progress
	}
	if req.Status != nil {
		status, ok := models.ParseEnrollmentStatus(*req.Status)
		if !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown enrollment status %q", *req.Status))
		}
		enrollment.Status = status
	}
	if req.IsEnrolled != nil {
		enrollment.IsEnrolled = *req.IsEnrolled
	}

	if err := s.store.Enrollments().Update(ctx, enrollment); err != nil {
		if !apperrors.NotFound(err) {
			s.logger.Error().Err(err).Int64("enrollmentID", enrollment.ID).Msg("Failed to update enrollment")
		}
		return nil, err
	}

	resp := dto.NewEnrollmentResponse(enrollment)
	return &resp, nil
}

// DeleteEnrollment removes an enrollment of the actor, or any enrollment for an admin
func (s *enrollmentServiceImpl) DeleteEnrollment(ctx context.Context, actor *auth.Principal, enrollmentID int64) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	enrollment, err := s.store.Enrollments().GetByID(ctx, enrollmentID)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeSelfOr(actor, enrollment.UserID, auth.AdminOnly); err != nil {
		return err
	}
	if err := s.store.Enrollments().Delete(ctx, enrollmentID); err != nil {
		return err
	}
	s.logger.Info().Int64("enrollmentID", enrollmentID).Int64("actorID", actor.UserID).Msg("Enrollment deleted")
	return nil
}
