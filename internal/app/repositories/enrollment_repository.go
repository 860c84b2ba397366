package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/db"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
)

const enrollmentsUserCourseConstraint = "enrollments_user_course_key"

var enrollmentColumns = []string{
	"id", "user_id", "course_id", "progress", "status", "is_enrolled", "created_at", "updated_at",
}

type enrollmentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

func scanEnrollment(row rowScanner) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &e.Progress, &e.Status, &e.IsEnrolled, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// userOrCourses builds "user_id = ? OR course_id IN (...)" skipping empty parts
func userOrCourses(userID int64, courseIDs []int64) squirrel.Or {
	cond := squirrel.Or{}
	if userID > 0 {
		cond = append(cond, squirrel.Eq{"user_id": userID})
	}
	if len(courseIDs) > 0 {
		cond = append(cond, squirrel.Eq{"course_id": courseIDs})
	}
	return cond
}

// Create inserts an enrollment; a second enrollment of the same user into the same course is rejected
func (r *enrollmentRepository) Create(ctx context.Context, e *models.Enrollment) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("user_id", "course_id", "progress", "status", "is_enrolled").
		Values(e.UserID, e.CourseID, e.Progress, e.Status, e.IsEnrolled).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, enrollmentsUserCourseConstraint) {
			return apperrors.ErrEnrollmentExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewResourceNotFoundError("user or course does not exist")
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// GetByID retrieves an enrollment
func (r *enrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns...).From("enrollments").Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	e, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}
	return e, nil
}

// ListByUserIDs returns the enrollments of the given users
func (r *enrollmentRepository) ListByUserIDs(ctx context.Context, userIDs []int64) ([]models.Enrollment, error) {
	enrollments := []models.Enrollment{}
	if len(userIDs) == 0 {
		return enrollments, nil
	}

	sql, args, err := r.sb.Select(enrollmentColumns...).From("enrollments").
		Where(squirrel.Eq{"user_id": userIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, *e)
	}
	return enrollments, rows.Err()
}

// Update stores progress, status and the enrolled flag
func (r *enrollmentRepository) Update(ctx context.Context, e *models.Enrollment) error {
	sql, args, err := r.sb.Update("enrollments").
		SetMap(map[string]interface{}{
			"progress":    e.Progress,
			"status":      e.Status,
			"is_enrolled": e.IsEnrolled,
			"updated_at":  squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": e.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update enrollment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.UpdatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrEnrollmentNotFound
		}
		return fmt.Errorf("error updating enrollment: %w", err)
	}
	return nil
}

// Delete removes one enrollment
func (r *enrollmentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("enrollments").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete enrollment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// DeleteByUserOrCourses removes the enrollments of a user and the enrollments into the given courses
func (r *enrollmentRepository) DeleteByUserOrCourses(ctx context.Context, userID int64, courseIDs []int64) (int64, error) {
	cond := userOrCourses(userID, courseIDs)
	if len(cond) == 0 {
		return 0, nil
	}

	sql, args, err := r.sb.Delete("enrollments").Where(cond).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete enrollments query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting enrollments: %w", err)
	}
	return tag.RowsAffected(), nil
}
