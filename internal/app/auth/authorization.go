package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	pkgauth "github.com/yigit/coursehub/internal/pkg/auth"
)

// RoleSet is the set of roles allowed to perform an operation
type RoleSet map[models.Role]struct{}

// Roles builds a RoleSet
func Roles(roles ...models.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether role is in the set
func (s RoleSet) Contains(role models.Role) bool {
	_, ok := s[role]
	return ok
}

// Commonly used role sets
var (
	AdminOnly        = Roles(models.RoleAdmin)
	CourseManagers   = Roles(models.RoleAdmin, models.RoleInstructor)
	AnyAuthenticated = Roles(models.Roles...)
)

// Principal is the authenticated identity of a request
type Principal struct {
	UserID    int64
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

// IsAdmin reports whether the principal holds the admin role
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

// TokenVerifier verifies session tokens
type TokenVerifier interface {
	Verify(token string) (*pkgauth.Claims, error)
}

// Gate authenticates tokens and checks roles. The role is always loaded from
// the store so that role changes take effect on the next request.
type Gate struct {
	verifier TokenVerifier
	revoked  pkgauth.RevocationStore
	users    repositories.UserRepository
	logger   zerolog.Logger
}

// NewGate creates a new authorization gate
func NewGate(verifier TokenVerifier, revoked pkgauth.RevocationStore, users repositories.UserRepository, logger zerolog.Logger) *Gate {
	if revoked == nil {
		revoked = pkgauth.NoopRevocationStore{}
	}
	return &Gate{
		verifier: verifier,
		revoked:  revoked,
		users:    users,
		logger:   logger,
	}
}

// Authenticate resolves a token into a principal. Every failure yields ErrUnauthenticated.
func (g *Gate) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	revoked, err := g.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Fail closed when the denylist cannot be consulted
		g.logger.Error().Err(err).Str("jti", claims.ID).Msg("Token revocation lookup failed")
		return nil, apperrors.ErrUnauthenticated
	}
	if revoked {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := g.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			g.logger.Error().Err(err).Int64("userID", claims.UserID).Msg("Error loading user during authentication")
		}
		return nil, apperrors.ErrUnauthenticated
	}
	if !user.IsActive {
		return nil, apperrors.ErrUnauthenticated
	}

	p := &Principal{
		UserID:  user.ID,
		Role:    user.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

// Authorize checks the principal's role against the required set
func Authorize(p *Principal, required RoleSet) error {
	if p == nil {
		return apperrors.ErrUnauthenticated
	}
	if !required.Contains(p.Role) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// AuthorizeSelfOr allows the owner of a resource or any role in the set
func AuthorizeSelfOr(p *Principal, ownerID int64, roles RoleSet) error {
	if p == nil {
		return apperrors.ErrUnauthenticated
	}
	if p.UserID == ownerID {
		return nil
	}
	return Authorize(p, roles)
}
