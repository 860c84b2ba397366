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

// Unique constraints on the users table
const (
	usersEmailConstraint    = "users_email_lower_key"
	usersUsernameConstraint = "users_username_key"
)

var userColumns = []string{
	"id", "username", "email", "full_name", "phone_number", "password",
	"profile_photo", "cover_photo", "role", "sex", "is_active", "created_at", "updated_at",
}

type userRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PhoneNumber, &u.Password,
		&u.ProfilePhoto, &u.CoverPhoto, &u.Role, &u.Sex, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// mapUserWriteError translates unique violations into the domain errors
func mapUserWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, usersEmailConstraint):
		return apperrors.ErrEmailAlreadyExists
	case dberrors.IsDuplicateConstraintError(err, usersUsernameConstraint):
		return apperrors.ErrUsernameTaken
	case dberrors.IsUniqueViolation(err):
		return apperrors.ErrResourceAlreadyExists
	}
	return nil
}

// Create inserts the user and fills ID and timestamps
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("username", "email", "full_name", "phone_number", "password",
			"profile_photo", "cover_photo", "role", "sex", "is_active").
		Values(user.Username, user.Email, user.FullName, user.PhoneNumber, user.Password,
			user.ProfilePhoto, user.CoverPhoto, user.Role, user.Sex, user.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if mapped := mapUserWriteError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *userRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email, ignoring case
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Expr("LOWER(email) = LOWER(?)", email))
}

// List returns every user ordered by id
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Update overwrites the editable profile fields and the password hash
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"username":      user.Username,
			"email":         user.Email,
			"full_name":     user.FullName,
			"phone_number":  user.PhoneNumber,
			"password":      user.Password,
			"profile_photo": user.ProfilePhoto,
			"cover_photo":   user.CoverPhoto,
			"updated_at":    squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": user.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&user.UpdatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrUserNotFound
		}
		if mapped := mapUserWriteError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error executing update user query")
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// UpdateRole changes only the role column
func (r *userRepository) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	sql, args, err := r.sb.Update("users").
		Set("role", role).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update role query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes the user row. Dependent rows must already be gone.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
