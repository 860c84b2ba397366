package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	pkgauth "github.com/yigit/coursehub/internal/pkg/auth"
	"github.com/yigit/coursehub/internal/testutils"
)

type gateFixture struct {
	gate    *Gate
	jwt     *pkgauth.JWTService
	revoked *pkgauth.RedisRevocationStore
	store   *testutils.MemoryStore
}

func newGateFixture(t *testing.T) gateFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	revoked := pkgauth.NewRedisRevocationStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	jwtSvc := pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	store := testutils.NewMemoryStore()
	return gateFixture{
		gate:    NewGate(jwtSvc, revoked, store.Users(), zerolog.Nop()),
		jwt:     jwtSvc,
		revoked: revoked,
		store:   store,
	}
}

func (f gateFixture) user(t *testing.T, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Username: "u" + string(role), Email: string(role) + "@example.com", Role: role, IsActive: true, Sex: models.SexMale}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func TestGate_Authenticate(t *testing.T) {
	f := newGateFixture(t)
	u := f.user(t, models.RoleInstructor)

	token, expiresAt, err := f.jwt.Issue(u.ID)
	require.NoError(t, err)

	p, err := f.gate.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.UserID)
	assert.Equal(t, models.RoleInstructor, p.Role)
	assert.NotEmpty(t, p.TokenID)
	assert.WithinDuration(t, expiresAt, p.ExpiresAt, time.Second)
}

func TestGate_AuthenticateUsesCurrentRole(t *testing.T) {
	f := newGateFixture(t)
	u := f.user(t, models.RoleUser)
	token, _, err := f.jwt.Issue(u.ID)
	require.NoError(t, err)

	require.NoError(t, f.store.Users().UpdateRole(context.Background(), u.ID, models.RoleAdmin))

	p, err := f.gate.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)
}

func TestGate_AuthenticateFailures(t *testing.T) {
	f := newGateFixture(t)
	u := f.user(t, models.RoleUser)
	ctx := context.Background()

	revokedToken, _, err := f.jwt.Issue(u.ID)
	require.NoError(t, err)
	claims, err := f.jwt.Verify(revokedToken)
	require.NoError(t, err)
	require.NoError(t, f.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time))

	ghostToken, _, err := f.jwt.Issue(9999)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "abc"},
		{"revoked", revokedToken},
		{"deleted user", ghostToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.gate.Authenticate(ctx, tt.token)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		})
	}
}

func TestAuthorize(t *testing.T) {
	admin := &Principal{UserID: 1, Role: models.RoleAdmin}
	user := &Principal{UserID: 2, Role: models.RoleUser}

	assert.NoError(t, Authorize(admin, AdminOnly))
	assert.ErrorIs(t, Authorize(user, AdminOnly), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, Authorize(nil, AdminOnly), apperrors.ErrUnauthenticated)
	assert.NoError(t, Authorize(user, AnyAuthenticated))
	assert.ErrorIs(t, Authorize(user, Roles()), apperrors.ErrPermissionDenied)
}

func TestAuthorizeSelfOr(t *testing.T) {
	admin := &Principal{UserID: 1, Role: models.RoleAdmin}
	user := &Principal{UserID: 2, Role: models.RoleUser}

	assert.NoError(t, AuthorizeSelfOr(user, 2, AdminOnly))
	assert.NoError(t, AuthorizeSelfOr(admin, 2, AdminOnly))
	assert.ErrorIs(t, AuthorizeSelfOr(user, 3, AdminOnly), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, AuthorizeSelfOr(nil, 3, AdminOnly), apperrors.ErrUnauthenticated)
}
