package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appauth "github.com/dreamshub/backend/internal/application/auth"
	infraauth "github.com/dreamshub/backend/internal/infrastructure/auth"
	"github.com/dreamshub/backend/internal/interfaces/http/dto"
)

// SessionKey is the gin context key holding the authenticated session
const SessionKey = "session"

// RequireSession validates the Bearer token on each request and stores
// the resulting session in the gin context. Requests without a valid
// token are rejected with 401.
func RequireSession(jwtService *infraauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}

		session, err := jwtService.ValidateToken(token)
		if err != nil {
			msg := "invalid token"
			if err == infraauth.ErrExpiredToken {
				msg = "token expired"
			}
			abortUnauthorized(c, msg)
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// RequireStockManager rejects sessions whose role may not record stock
// movements. Must run after RequireSession.
func RequireStockManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}
		if !session.CanManageStock() {
			requestID := GetRequestID(c)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden,
				"role does not permit stock management",
				requestID,
			))
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session stored by RequireSession
func CurrentSession(c *gin.Context) (appauth.Session, bool) {
	value, exists := c.Get(SessionKey)
	if !exists {
		return appauth.Session{}, false
	}
	session, ok := value.(appauth.Session)
	return session, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	requestID := GetRequestID(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		"UNAUTHORIZED",
		message,
		requestID,
	))
}
