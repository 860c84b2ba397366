package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/coursehub/internal/app/models"
	appRepos "github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	pkgauth "github.com/yigit/coursehub/internal/pkg/auth"
)

// AdminAccount describes the default administrator
type AdminAccount struct {
	Username string
	Email    string
	Password string
}

// CreateDefaultData creates the default admin account if it does not exist yet.
// Running it again is a no-op.
func CreateDefaultData(ctx context.Context, store appRepos.Store, hasher pkgauth.PasswordHasher, admin AdminAccount, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))

	lgr.Info().Str("email", email).Msg("Checking/Creating default admin user...")

	_, err := store.Users().GetByEmail(ctx, email)
	if err == nil {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}

	hashedPassword, err := hasher.Hash(admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	user := &appModels.User{
		Username: admin.Username,
		Email:    email,
		FullName: "System Administrator",
		Password: hashedPassword,
		Role:     appModels.RoleAdmin,
		Sex:      appModels.SexMale,
		IsActive: true,
	}

	err = store.Users().Create(ctx, user)
	switch {
	case errors.Is(err, apperrors.ErrEmailAlreadyExists), errors.Is(err, apperrors.ErrUsernameTaken):
		// another instance seeded concurrently
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	case err != nil:
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminID", user.ID).Msg("Default admin user created successfully")
	return nil
}
