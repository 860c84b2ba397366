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

func TestCourseService_CreateCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, instructor := f.seedUser(t, "ada", models.RoleInstructor)
	_, student := f.seedUser(t, "ben", models.RoleUser)

	t.Run("instructor creates", func(t *testing.T) {
		resp, err := f.courses.CreateCourse(ctx, instructor, &dto.CreateCourseRequest{Title: "  Go  ", Price: 25})
		require.NoError(t, err)
		assert.Equal(t, "Go", resp.Title)
		assert.Equal(t, instructor.UserID, resp.UserID)
	})

	t.Run("student is forbidden", func(t *testing.T) {
		_, err := f.courses.CreateCourse(ctx, student, &dto.CreateCourseRequest{Title: "Nope"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("title required", func(t *testing.T) {
		_, err := f.courses.CreateCourse(ctx, instructor, &dto.CreateCourseRequest{Title: " "})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		_, err := f.courses.CreateCourse(ctx, nil, &dto.CreateCourseRequest{Title: "Go"})
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	assert.Equal(t, 1, f.store.Counts()["courses"])
}

func TestCourseService_GetAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, instructor := f.seedUser(t, "cleo", models.RoleInstructor)

	first := f.seedCourseTree(t, instructor, "First", 10)
	for _, title := range []string{"Second", "Third"} {
		_, err := f.courses.CreateCourse(ctx, instructor, &dto.CreateCourseRequest{Title: title})
		require.NoError(t, err)
	}

	got, err := f.courses.GetCourse(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, got.Chapters, 1)
	assert.Equal(t, "Intro", got.Chapters[0].Title)
	require.Len(t, got.Chapters[0].Lessons, 1)
	assert.Equal(t, "Welcome", got.Chapters[0].Lessons[0].Title)

	_, err = f.courses.GetCourse(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	page, err := f.courses.ListCourses(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Courses, 1)
	assert.Equal(t, int64(3), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
}

func TestCourseService_UpdateCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, owner := f.seedUser(t, "dan", models.RoleInstructor)
	_, rival := f.seedUser(t, "eve", models.RoleInstructor)
	_, admin := f.seedUser(t, "root", models.RoleAdmin)

	created, err := f.courses.CreateCourse(ctx, owner, &dto.CreateCourseRequest{Title: "Old", CourseImg: "course.png"})
	require.NoError(t, err)

	req := &dto.UpdateCourseRequest{CourseID: created.ID, Title: "New", Price: 12}

	_, err = f.courses.UpdateCourse(ctx, rival, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := f.courses.UpdateCourse(ctx, owner, req)
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Title)
	assert.Equal(t, "course.png", resp.CourseImg)

	req.CoverImg = "cover.png"
	resp, err = f.courses.UpdateCourse(ctx, admin, req)
	require.NoError(t, err)
	assert.Equal(t, "cover.png", resp.CoverImg)

	req.CourseID = 9999
	_, err = f.courses.UpdateCourse(ctx, admin, req)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCourseService_DeleteCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, owner := f.seedUser(t, "fay", models.RoleInstructor)
	student, studentPrincipal := f.seedUser(t, "gus", models.RoleUser)

	course := f.seedCourseTree(t, owner, "Doomed", 40)
	kept := f.seedCourseTree(t, owner, "Kept", 40)
	_, err := f.enrollments.CreateEnrollment(ctx, studentPrincipal, &dto.CreateEnrollmentRequest{UserID: student.ID, CourseID: course.ID})
	require.NoError(t, err)
	_, err = f.payments.CreatePayment(ctx, studentPrincipal, &dto.CreatePaymentRequest{UserID: student.ID, CourseID: course.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, f.courses.DeleteCourse(ctx, studentPrincipal, course.ID), apperrors.ErrPermissionDenied)

	require.NoError(t, f.courses.DeleteCourse(ctx, owner, course.ID))
	counts := f.store.Counts()
	assert.Equal(t, 1, counts["courses"])
	assert.Equal(t, 1, counts["chapters"])
	assert.Equal(t, 1, counts["lessons"])
	assert.Equal(t, 0, counts["enrollments"])
	assert.Equal(t, 0, counts["payments"])

	_, err = f.courses.GetCourse(ctx, kept.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.courses.DeleteCourse(ctx, owner, course.ID), apperrors.ErrCourseNotFound)
}

func TestCourseService_AddLessonChecksChapterCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, owner := f.seedUser(t, "hal", models.RoleInstructor)

	a := f.seedCourseTree(t, owner, "A", 0)
	b, err := f.courses.CreateCourse(ctx, owner, &dto.CreateCourseRequest{Title: "B"})
	require.NoError(t, err)

	full, err := f.courses.GetCourse(ctx, a.ID)
	require.NoError(t, err)
	chapterOfA := full.Chapters[0].ID

	_, err = f.courses.AddLesson(ctx, owner, b.ID, chapterOfA, &dto.CreateLessonRequest{Title: "Misplaced"})
	assert.ErrorIs(t, err, apperrors.ErrChapterNotFound)

	_, err = f.courses.AddChapter(ctx, owner, 9999, &dto.CreateChapterRequest{Title: "Orphan"})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	lesson, err := f.courses.AddLesson(ctx, owner, a.ID, chapterOfA, &dto.CreateLessonRequest{Title: "Second", Position: 2})
	require.NoError(t, err)
	assert.Equal(t, chapterOfA, lesson.ChapterID)
}
