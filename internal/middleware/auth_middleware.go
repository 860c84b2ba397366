package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	pkgauth "github.com/yigit/coursehub/internal/pkg/auth"
)

// Context keys set by Authenticate
const (
	PrincipalKey = "principal"
	UserIDKey    = "userID"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	gate *auth.Gate
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(gate *auth.Gate) *AuthMiddleware {
	return &AuthMiddleware{gate: gate}
}

// tokenFromRequest reads the Authorization header, falling back to the
// token query parameter used by the Swagger UI
func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		header = c.Query("token")
	}
	token, err := pkgauth.ExtractBearerToken(header)
	if err != nil {
		return ""
	}
	return token
}

// Authenticate resolves the request token into a principal and stores it in the context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := m.gate.Authenticate(c.Request.Context(), tokenFromRequest(c))
		if err != nil {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			return
		}

		c.Set(PrincipalKey, principal)
		c.Set(UserIDKey, principal.UserID)
		c.Next()
	}
}

// RequireRoles rejects principals whose role is not in the set. It must run after Authenticate.
func (m *AuthMiddleware) RequireRoles(roles auth.RoleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.Authorize(CurrentPrincipal(c), roles); err != nil {
			HandleAPIError(c, err)
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by Authenticate, or nil
func CurrentPrincipal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}
