package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookwell/booking-api/pkg/auth"
	"github.com/bookwell/booking-api/pkg/httputil"
)

const (
	ContextAccountID = "account_id"
	ContextLocation  = "account_location"
)

type AuthMiddleware struct {
	jwtSvc *auth.JWTService
}

func NewAuthMiddleware(jwtSvc *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// Authenticate verifies the bearer token and resolves the tenant and
// its timezone into the request context. Handlers never trust a
// client-supplied account id; it always comes from the token.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		claims, err := m.jwtSvc.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		accountID, err := uuid.Parse(claims.AccountID)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		// The timezone claim was resolved by the auth collaborator at
		// login; an unknown zone falls back to server local time.
		loc := time.Local
		if claims.Timezone != "" {
			if parsed, err := time.LoadLocation(claims.Timezone); err == nil {
				loc = parsed
			}
		}

		c.Set(ContextAccountID, accountID)
		c.Set(ContextLocation, loc)
		c.Next()
	}
}

// AccountID reads the authenticated tenant from the request context.
func AccountID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextAccountID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// AccountLocation reads the resolved timezone from the request context.
func AccountLocation(c *gin.Context) *time.Location {
	if v, ok := c.Get(ContextLocation); ok {
		if loc, ok := v.(*time.Location); ok {
			return loc
		}
	}
	return time.Local
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.Response{
		Success: false,
		Error: &httputil.Error{
			Code:    http.StatusUnauthorized,
			Message: message,
		},
	})
}
