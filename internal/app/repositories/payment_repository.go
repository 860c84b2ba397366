package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/db"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
)

type paymentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// Create inserts a payment, generating its UUID when empty
func (r *paymentRepository) Create(ctx context.Context, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	sql, args, err := r.sb.Insert("payments").
		Columns("id", "user_id", "course_id", "price").
		Values(p.ID, p.UserID, p.CourseID, p.Price).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create payment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewResourceNotFoundError("user or course does not exist")
		}
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment; malformed ids are reported as not found
func (r *paymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrPaymentNotFound
	}

	sql, args, err := r.sb.Select("id", "user_id", "course_id", "price", "created_at").
		From("payments").Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get payment query: %w", err)
	}

	p := &models.Payment{}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.UserID, &p.CourseID, &p.Price, &p.CreatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error getting payment: %w", err)
	}
	return p, nil
}

// List returns every payment, newest first
func (r *paymentRepository) List(ctx context.Context) ([]models.Payment, error) {
	sql, args, err := r.sb.Select("id", "user_id", "course_id", "price", "created_at").
		From("payments").OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.CourseID, &p.Price, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Delete removes one payment
func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrPaymentNotFound
	}

	sql, args, err := r.sb.Delete("payments").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete payment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPaymentNotFound
	}
	return nil
}

// DeleteByUserOrCourses removes the payments of a user and the payments for the given courses
func (r *paymentRepository) DeleteByUserOrCourses(ctx context.Context, userID int64, courseIDs []int64) (int64, error) {
	cond := userOrCourses(userID, courseIDs)
	if len(cond) == 0 {
		return 0, nil
	}

	sql, args, err := r.sb.Delete("payments").Where(cond).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete payments query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error deleting payments: %w", err)
	}
	return tag.RowsAffected(), nil
}
