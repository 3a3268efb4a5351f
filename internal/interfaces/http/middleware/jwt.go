package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	identityapp "github.com/riya0704/LeadTrak/internal/application/identity"
	"github.com/riya0704/LeadTrak/internal/domain/identity"
	"github.com/riya0704/LeadTrak/internal/infrastructure/auth"
	"github.com/riya0704/LeadTrak/internal/interfaces/http/dto"
)

// Auth context keys
const (
	CurrentUserKey = "current_user"
	JWTClaimsKey   = "jwt_claims"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTAuth validates the bearer token and loads the authenticated user into
// the request context. Requests without a valid token are rejected.
func JWTAuth(jwtService *auth.JWTService, authService *identityapp.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			unauthorized(c, "Missing or malformed authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.Validate(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				unauthorized(c, "Token has expired")
				return
			}
			unauthorized(c, "Invalid token")
			return
		}

		user, err := authService.CurrentUser(c.Request.Context(), claims)
		if err != nil {
			unauthorized(c, "Invalid token")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// GetCurrentUser returns the authenticated user from the context, or nil
func GetCurrentUser(c *gin.Context) *identity.User {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*identity.User)
	if !ok {
		return nil
	}
	return user
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
