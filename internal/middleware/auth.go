package middleware

import (
	"net/http"
	"strings"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/pkg/jwt"
	"whiskerwatch/internal/pkg/params"
	"whiskerwatch/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID  = "user_id"
	ctxRole    = "role"
	ctxSession = "session"
)

// JWTAuth requires a valid bearer token and stores the caller's session in
// the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		setSession(c, claims.Session())
		c.Next()
	}
}

// OptionalJWTAuth attaches a session when a valid bearer token is present and
// lets anonymous requests through otherwise.
func OptionalJWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := jwtService.ValidateToken(token); err == nil {
				setSession(c, claims.Session())
			}
		}
		c.Next()
	}
}

// BearerToken extracts the token from the request's Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	return bearerToken(c.GetHeader("Authorization"))
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setSession(c *gin.Context, s *domain.Session) {
	c.Set(ctxSession, s)
	c.Set(ctxUserID, s.UserID)
	c.Set(ctxRole, s.Role)
}

// SessionFrom returns the authenticated session, or nil for anonymous
// requests.
func SessionFrom(c *gin.Context) *domain.Session {
	v, ok := c.Get(ctxSession)
	if !ok {
		return nil
	}
	s, _ := v.(*domain.Session)
	return s
}

// SelfOrAdmin lets the request through when the path parameter names the
// caller's own user id or the caller is an admin.
func SelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := SessionFrom(c)
		if s == nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		id, err := params.ID(c, param)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		if id != s.UserID && !s.IsAdmin() {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only manage your own account")
			c.Abort()
			return
		}

		c.Next()
	}
}
