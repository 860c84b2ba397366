package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

func TestEnrollmentService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, instructor := f.seedUser(t, "oli", models.RoleInstructor)
	student, studentPrincipal := f.seedUser(t, "pam", models.RoleUser)
	_, stranger := f.seedUser(t, "quin", models.RoleUser)
	_, admin := f.seedUser(t, "root", models.RoleAdmin)

	course, err := f.courses.CreateCourse(ctx, instructor, &dto.CreateCourseRequest{Title: "Go"})
	require.NoError(t, err)

	created, err := f.enrollments.CreateEnrollment(ctx, studentPrincipal, &dto.CreateEnrollmentRequest{UserID: student.ID, CourseID: course.ID})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPending, created.Status)
	require.NotNil(t, created.Course)
	assert.Equal(t, "Go", created.Course.Title)

	t.Run("duplicate enrollment conflicts", func(t *testing.T) {
		_, err := f.enrollments.CreateEnrollment(ctx, admin, &dto.CreateEnrollmentRequest{UserID: student.ID, CourseID: course.ID})
		assert.ErrorIs(t, err, apperrors.ErrEnrollmentExists)
		assert.Equal(t, 1, f.store.Counts()["enrollments"])
	})

	t.Run("enrolling someone else is forbidden", func(t *testing.T) {
		_, err := f.enrollments.CreateEnrollment(ctx, stranger, &dto.CreateEnrollmentRequest{UserID: student.ID, CourseID: course.ID})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("missing course", func(t *testing.T) {
		_, err := f.enrollments.CreateEnrollment(ctx, studentPrincipal, &dto.CreateEnrollmentRequest{UserID: student.ID, CourseID: 9999})
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := f.enrollments.CreateEnrollment(ctx, studentPrincipal, &dto.CreateEnrollmentRequest{UserID: student.ID, CourseID: course.ID, Status: "DONE"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("list mine", func(t *testing.T) {
		mine, err := f.enrollments.ListMyEnrollments(ctx, studentPrincipal)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.NotNil(t, mine[0].Course)

		none, err := f.enrollments.ListMyEnrollments(ctx, stranger)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("update", func(t *testing.T) {
		progress := 60
		status := "active"
		_, err := f.enrollments.UpdateEnrollment(ctx, stranger, &dto.UpdateEnrollmentRequest{EnrollmentID: created.ID, Progress: &progress})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		updated, err := f.enrollments.UpdateEnrollment(ctx, studentPrincipal, &dto.UpdateEnrollmentRequest{EnrollmentID: created.ID, Progress: &progress, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, 60, updated.Progress)
		assert.Equal(t, models.EnrollmentActive, updated.Status)

		tooMuch := 101
		_, err = f.enrollments.UpdateEnrollment(ctx, studentPrincipal, &dto.UpdateEnrollmentRequest{EnrollmentID: created.ID, Progress: &tooMuch})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("delete", func(t *testing.T) {
		assert.ErrorIs(t, f.enrollments.DeleteEnrollment(ctx, stranger, created.ID), apperrors.ErrPermissionDenied)
		require.NoError(t, f.enrollments.DeleteEnrollment(ctx, studentPrincipal, created.ID))
		assert.ErrorIs(t, f.enrollments.DeleteEnrollment(ctx, admin, created.ID), apperrors.ErrEnrollmentNotFound)
	})
}
