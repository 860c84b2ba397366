package services

import (
	"context"
	"fmt"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
)

// Services defined in this package:
// - AccountService: registration, login, profile edits, roles and cascading deletes
// - CourseService: course catalog with chapters and lessons
// - PaymentService: payment records
// - EnrollmentService: user enrollments into courses

// Messages shared by the services
const (
	msgMissingFields = "Please provide all required fields"
)

func courseIDs(courses []models.Course) []int64 {
	ids := make([]int64, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	return ids
}

// attachCourseTree loads chapters and lessons for the given courses in two queries
func attachCourseTree(ctx context.Context, store repositories.Store, courses []models.Course) error {
	if len(courses) == 0 {
		return nil
	}
	ids := courseIDs(courses)

	chapters, err := store.Courses().ListChapters(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading chapters: %w", err)
	}
	lessons, err := store.Courses().ListLessons(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading lessons: %w", err)
	}

	lessonsByChapter := make(map[int64][]models.Lesson)
	for _, l := range lessons {
		lessonsByChapter[l.ChapterID] = append(lessonsByChapter[l.ChapterID], l)
	}

	chaptersByCourse := make(map[int64][]models.Chapter)
	for _, ch := range chapters {
		ch.Lessons = lessonsByChapter[ch.ID]
		chaptersByCourse[ch.CourseID] = append(chaptersByCourse[ch.CourseID], ch)
	}

	for i := range courses {
		courses[i].Chapters = chaptersByCourse[courses[i].ID]
	}
	return nil
}

// attachEnrollmentCourses resolves the course of every enrollment, optionally with its chapter tree
func attachEnrollmentCourses(ctx context.Context, store repositories.Store, enrollments []models.Enrollment, withTree bool) error {
	if len(enrollments) == 0 {
		return nil
	}

	seen := make(map[int64]bool)
	var ids []int64
	for _, e := range enrollments {
		if !seen[e.CourseID] {
			seen[e.CourseID] = true
			ids = append(ids, e.CourseID)
		}
	}

	courses, err := store.Courses().ListByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading enrolled courses: %w", err)
	}
	if withTree {
		if err := attachCourseTree(ctx, store, courses); err != nil {
			return err
		}
	}

	byID := make(map[int64]*models.Course, len(courses))
	for i := range courses {
		byID[courses[i].ID] = &courses[i]
	}
	for i := range enrollments {
		enrollments[i].Course = byID[enrollments[i].CourseID]
	}
	return nil
}

// attachUserRelations loads owned courses and enrollments (with their course) for each user
func attachUserRelations(ctx context.Context, store repositories.Store, users []models.User, withTree bool) error {
	if len(users) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	courses, err := store.Courses().ListByOwners(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading owned courses: %w", err)
	}
	if withTree {
		if err := attachCourseTree(ctx, store, courses); err != nil {
			return err
		}
	}

	enrollments, err := store.Enrollments().ListByUserIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading enrollments: %w", err)
	}
	if err := attachEnrollmentCourses(ctx, store, enrollments, withTree); err != nil {
		return err
	}

	coursesByOwner := make(map[int64][]models.Course)
	for _, c := range courses {
		coursesByOwner[c.UserID] = append(coursesByOwner[c.UserID], c)
	}
	enrollmentsByUser := make(map[int64][]models.Enrollment)
	for _, e := range enrollments {
		enrollmentsByUser[e.UserID] = append(enrollmentsByUser[e.UserID], e)
	}

	for i := range users {
		users[i].Courses = coursesByOwner[users[i].ID]
		users[i].Enrollments = enrollmentsByUser[users[i].ID]
	}
	return nil
}
