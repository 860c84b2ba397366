package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/db"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
	"github.com/yigit/coursehub/internal/pkg/logger"
)

var courseColumns = []string{
	"id", "user_id", "title", "description", "course_img", "cover_img",
	"preview_course_url", "is_published", "price", "created_at", "updated_at",
}

type courseRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

func scanCourse(row rowScanner) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &c.CourseImg, &c.CoverImg,
		&c.PreviewCourseURL, &c.IsPublished, &c.Price, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a course owned by course.UserID
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("user_id", "title", "description", "course_img", "cover_img",
			"preview_course_url", "is_published", "price").
		Values(course.UserID, course.Title, course.Description, course.CourseImg, course.CoverImg,
			course.PreviewCourseURL, course.IsPublished, course.Price).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", course.UserID).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course without its chapters
func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

func (r *courseRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]models.Course, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// List returns one page of courses and the total count
func (r *courseRepository) List(ctx context.Context, offset uint64, limit int) ([]models.Course, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("courses").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	courses, err := r.query(ctx, r.sb.Select(courseColumns...).From("courses").
		OrderBy("id ASC").
		Offset(offset).
		Limit(uint64(limit)))
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// ListByIDs returns the courses with the given ids
func (r *courseRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}
	return r.query(ctx, r.sb.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": ids}).OrderBy("id ASC"))
}

// ListByOwners returns the courses created by any of ownerIDs
func (r *courseRepository) ListByOwners(ctx context.Context, ownerIDs []int64) ([]models.Course, error) {
	if len(ownerIDs) == 0 {
		return []models.Course{}, nil
	}
	return r.query(ctx, r.sb.Select(courseColumns...).From("courses").Where(squirrel.Eq{"user_id": ownerIDs}).OrderBy("id ASC"))
}

// Update overwrites the editable course fields
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"title":              course.Title,
			"description":        course.Description,
			"course_img":         course.CourseImg,
			"cover_img":          course.CoverImg,
			"preview_course_url": course.PreviewCourseURL,
			"is_published":       course.IsPublished,
			"price":              course.Price,
			"updated_at":         squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": course.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.UpdatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

func (r *courseRepository) deleteIn(ctx context.Context, table, column string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	sql, args, err := r.sb.Delete(table).Where(squirrel.Eq{column: ids}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete %s query: %w", table, err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByIDs removes courses. Chapters, lessons, enrollments and payments must already be gone.
func (r *courseRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	return r.deleteIn(ctx, "courses", "id", ids)
}

// CreateChapter inserts a chapter
func (r *courseRepository) CreateChapter(ctx context.Context, chapter *models.Chapter) error {
	sql, args, err := r.sb.Insert("chapters").
		Columns("course_id", "title", "position").
		Values(chapter.CourseID, chapter.Title, chapter.Position).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create chapter query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&chapter.ID, &chapter.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating chapter: %w", err)
	}
	return nil
}

// GetChapterByID retrieves a single chapter
func (r *courseRepository) GetChapterByID(ctx context.Context, id int64) (*models.Chapter, error) {
	sql, args, err := r.sb.Select("id", "course_id", "title", "position", "created_at").
		From("chapters").Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get chapter query: %w", err)
	}

	ch := &models.Chapter{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&ch.ID, &ch.CourseID, &ch.Title, &ch.Position, &ch.CreatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrChapterNotFound
		}
		return nil, fmt.Errorf("error getting chapter: %w", err)
	}
	return ch, nil
}

// ListChapters returns the chapters of the given courses ordered by position
func (r *courseRepository) ListChapters(ctx context.Context, courseIDs []int64) ([]models.Chapter, error) {
	chapters := []models.Chapter{}
	if len(courseIDs) == 0 {
		return chapters, nil
	}

	sql, args, err := r.sb.Select("id", "course_id", "title", "position", "created_at").
		From("chapters").
		Where(squirrel.Eq{"course_id": courseIDs}).
		OrderBy("course_id ASC", "position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list chapters query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying chapters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ch models.Chapter
		if err := rows.Scan(&ch.ID, &ch.CourseID, &ch.Title, &ch.Position, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning chapter row: %w", err)
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

// DeleteChaptersByCourseIDs removes every chapter of the given courses
func (r *courseRepository) DeleteChaptersByCourseIDs(ctx context.Context, courseIDs []int64) (int64, error) {
	return r.deleteIn(ctx, "chapters", "course_id", courseIDs)
}

// CreateLesson inserts a lesson
func (r *courseRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	sql, args, err := r.sb.Insert("lessons").
		Columns("chapter_id", "course_id", "title", "video_url", "position").
		Values(lesson.ChapterID, lesson.CourseID, lesson.Title, lesson.VideoURL, lesson.Position).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create lesson query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&lesson.ID, &lesson.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrChapterNotFound
		}
		return fmt.Errorf("error creating lesson: %w", err)
	}
	return nil
}

// ListLessons returns the lessons of the given courses ordered by position
func (r *courseRepository) ListLessons(ctx context.Context, courseIDs []int64) ([]models.Lesson, error) {
	lessons := []models.Lesson{}
	if len(courseIDs) == 0 {
		return lessons, nil
	}

	sql, args, err := r.sb.Select("id", "chapter_id", "course_id", "title", "video_url", "position", "created_at").
		From("lessons").
		Where(squirrel.Eq{"course_id": courseIDs}).
		OrderBy("chapter_id ASC", "position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list lessons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying lessons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.ChapterID, &l.CourseID, &l.Title, &l.VideoURL, &l.Position, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// DeleteLessonsByCourseIDs removes every lesson of the given courses
func (r *courseRepository) DeleteLessonsByCourseIDs(ctx context.Context, courseIDs []int64) (int64, error) {
	return r.deleteIn(ctx, "lessons", "course_id", courseIDs)
}
