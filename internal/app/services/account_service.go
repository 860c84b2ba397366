package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	pkgauth "github.com/yigit/coursehub/internal/pkg/auth"
	"github.com/yigit/coursehub/internal/pkg/metrics"
	"github.com/yigit/coursehub/internal/pkg/validation"
)

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(userID int64) (string, time.Time, error)
}

// AccountService defines the user account lifecycle
type AccountService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, actor *auth.Principal) error
	GetUser(ctx context.Context, userID int64) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	GetProfile(ctx context.Context, actor *auth.Principal) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, actor *auth.Principal, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	UpdateRole(ctx context.Context, actor *auth.Principal, req *dto.UpdateRoleRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actor *auth.Principal, userID int64) (*dto.UserResponse, error)
}

// accountServiceImpl implements AccountService
type accountServiceImpl struct {
	store   repositories.Store
	hasher  pkgauth.PasswordHasher
	tokens  TokenIssuer
	revoked pkgauth.RevocationStore
	logger  zerolog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	store repositories.Store,
	hasher pkgauth.PasswordHasher,
	tokens TokenIssuer,
	revoked pkgauth.RevocationStore,
	logger zerolog.Logger,
) AccountService {
	if revoked == nil {
		revoked = pkgauth.NoopRevocationStore{}
	}
	return &accountServiceImpl{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		revoked: revoked,
		logger:  logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// Register validates the form, hashes the password and stores the account.
// Duplicate emails and usernames are detected by the store's unique constraints.
func (s *accountServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	resp, err := s.register(ctx, req)
	if err != nil {
		metrics.RecordRegistration(metrics.ResultFailure)
		return nil, err
	}
	metrics.RecordRegistration(metrics.ResultSuccess)
	return resp, nil
}

func (s *accountServiceImpl) register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if blank(req.Username, req.Email, req.FullName, req.PhoneNumber, req.Password,
		req.ConfirmPassword, req.ProfileImage, req.CoverImage, req.Sex) {
		return nil, apperrors.NewValidationError(msgMissingFields)
	}

	if msg := validation.First(
		validation.Username(req.Username),
		validation.Email(req.Email),
		validation.FullName(req.FullName),
		validation.PhoneNumber(req.PhoneNumber),
		validation.Password(req.Password),
	); msg != "" {
		return nil, apperrors.NewValidationError(msg)
	}

	if req.Password != req.ConfirmPassword {
		return nil, apperrors.NewValidationError("Password and confirm password do not match")
	}

	sex, ok := models.ParseSex(req.Sex)
	if !ok {
		return nil, apperrors.NewValidationError("sex must be MALE or FEMALE")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password during registration")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        normalizeEmail(req.Email),
		FullName:     strings.TrimSpace(req.FullName),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Password:     hash,
		ProfilePhoto: req.ProfileImage,
		CoverPhoto:   req.CoverImage,
		Role:         models.RoleUser,
		Sex:          sex,
		IsActive:     true,
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		if !apperrors.Duplicate(err) {
			s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to create user")
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Login checks the credentials and issues a session token
func (s *accountServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if blank(req.Email, req.Password) {
		metrics.RecordLogin(metrics.ResultFailure)
		return nil, apperrors.NewValidationError(msgMissingFields)
	}

	user, err := s.store.Users().GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		metrics.RecordLogin(metrics.ResultFailure)
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrIncorrectEmail
		}
		return nil, fmt.Errorf("error loading user for login: %w", err)
	}

	if !s.hasher.Verify(user.Password, req.Password) {
		metrics.RecordLogin(metrics.ResultFailure)
		s.logger.Warn().Int64("userID", user.ID).Msg("Login failed: incorrect password")
		return nil, apperrors.ErrIncorrectPassword
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		metrics.RecordLogin(metrics.ResultFailure)
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to issue token")
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	metrics.RecordLogin(metrics.ResultSuccess)
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresAt:   expiresAt,
		},
		User: dto.NewUserResponse(user),
	}, nil
}

// Logout revokes the token the actor authenticated with
func (s *accountServiceImpl) Logout(ctx context.Context, actor *auth.Principal) error {
	if actor == nil {
		return apperrors.ErrUnauthenticated
	}
	if err := s.revoked.Revoke(ctx, actor.TokenID, actor.ExpiresAt); err != nil {
		s.logger.Error().Err(err).Int64("userID", actor.UserID).Msg("Failed to revoke token")
		return err
	}
	return nil
}

func (s *accountServiceImpl) loadUser(ctx context.Context, store repositories.Store, userID int64, withTree bool) (*models.User, error) {
	user, err := store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	users := []models.User{*user}
	if err := attachUserRelations(ctx, store, users, withTree); err != nil {
		return nil, err
	}
	return &users[0], nil
}

// GetUser returns one user with owned courses and enrollments
func (s *accountServiceImpl) GetUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.loadUser(ctx, s.store, userID, false)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ListUsers returns every user with owned courses and enrollments
func (s *accountServiceImpl) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	if err := attachUserRelations(ctx, s.store, users, false); err != nil {
		return nil, err
	}
	return dto.NewUserListResponse(users), nil
}

// GetProfile returns the authenticated user with enrollments down to lessons
func (s *accountServiceImpl) GetProfile(ctx context.Context, actor *auth.Principal) (*dto.UserResponse, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	user, err := s.loadUser(ctx, s.store, actor.UserID, true)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateUser edits a profile. The password is always re-hashed; images change only when supplied.
func (s *accountServiceImpl) UpdateUser(ctx context.Context, actor *auth.Principal, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := auth.AuthorizeSelfOr(actor, req.UserID, auth.AdminOnly); err != nil {
		return nil, err
	}

	if blank(req.Username, req.Email, req.FullName, req.PhoneNumber, req.Password) {
		return nil, apperrors.NewValidationError(msgMissingFields)
	}
	if msg := validation.First(
		validation.Username(req.Username),
		validation.Email(req.Email),
		validation.FullName(req.FullName),
		validation.PhoneNumber(req.PhoneNumber),
		validation.Password(req.Password),
	); msg != "" {
		return nil, apperrors.NewValidationError(msg)
	}

	user, err := s.store.Users().GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to hash password during update")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.Username = strings.TrimSpace(req.Username)
	user.Email = normalizeEmail(req.Email)
	user.FullName = strings.TrimSpace(req.FullName)
	user.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	user.Password = hash
	if req.ProfileImage != "" {
		user.ProfilePhoto = req.ProfileImage
	}
	if req.CoverImage != "" {
		user.CoverPhoto = req.CoverImage
	}

	if err := s.store.Users().Update(ctx, user); err != nil {
		if !apperrors.Duplicate(err) && !apperrors.NotFound(err) {
			s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to update user")
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Int64("actorID", actor.UserID).Msg("User updated")
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateRole changes the role of the user identified by email. Admin only.
func (s *accountServiceImpl) UpdateRole(ctx context.Context, actor *auth.Principal, req *dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	if err := auth.Authorize(actor, auth.AdminOnly); err != nil {
		return nil, err
	}

	if blank(req.Email, req.Role) {
		return nil, apperrors.NewValidationError(msgMissingFields)
	}
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", req.Role))
	}

	var updated *models.User
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		user, err := tx.Users().GetByEmail(ctx, normalizeEmail(req.Email))
		if err != nil {
			return err
		}
		if err := tx.Users().UpdateRole(ctx, user.ID, role); err != nil {
			return err
		}
		updated, err = s.loadUser(ctx, tx, user.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", updated.ID).Str("role", string(role)).Int64("actorID", actor.UserID).Msg("User role updated")
	resp := dto.NewUserResponse(updated)
	return &resp, nil
}

// DeleteUser removes the user and everything that references it in one transaction:
// enrollments, payments, lessons, chapters and owned courses, then the user row.
func (s *accountServiceImpl) DeleteUser(ctx context.Context, actor *auth.Principal, userID int64) (*dto.UserResponse, error) {
	if err := auth.Authorize(actor, auth.AdminOnly); err != nil {
		return nil, err
	}

	var deleted *models.User
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}

		courses, err := tx.Courses().ListByOwners(ctx, []int64{userID})
		if err != nil {
			return fmt.Errorf("error loading owned courses: %w", err)
		}
		ids := courseIDs(courses)

		if _, err := tx.Enrollments().DeleteByUserOrCourses(ctx, userID, ids); err != nil {
			return fmt.Errorf("error deleting enrollments: %w", err)
		}
		if _, err := tx.Payments().DeleteByUserOrCourses(ctx, userID, ids); err != nil {
			return fmt.Errorf("error deleting payments: %w", err)
		}
		if _, err := tx.Courses().DeleteLessonsByCourseIDs(ctx, ids); err != nil {
			return fmt.Errorf("error deleting lessons: %w", err)
		}
		if _, err := tx.Courses().DeleteChaptersByCourseIDs(ctx, ids); err != nil {
			return fmt.Errorf("error deleting chapters: %w", err)
		}
		if _, err := tx.Courses().DeleteByIDs(ctx, ids); err != nil {
			return fmt.Errorf("error deleting courses: %w", err)
		}
		if err := tx.Users().Delete(ctx, userID); err != nil {
			return err
		}

		deleted = user
		return nil
	})
	if err != nil {
		if !apperrors.NotFound(err) {
			s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to delete user")
		}
		return nil, err
	}

	metrics.RecordAccountDeletion()
	s.logger.Info().Int64("userID", userID).Int64("actorID", actor.UserID).Msg("User deleted")
	resp := dto.NewUserResponse(deleted)
	return &resp, nil
}
