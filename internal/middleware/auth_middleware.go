package middleware

import (
	"strings"

	autherrors "go-gemtrack/internal/auth/errors"
	"go-gemtrack/internal/shared/apperror"
	"go-gemtrack/internal/shared/contextutil"
	"go-gemtrack/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const ContextUserID = "user_id"

// TokenVerifier resolves a session token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware reads the session cookie, falling back to a Bearer header for
// API clients. There is no anonymous identity: any failure stops the chain.
func AuthMiddleware(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cookieName)
		if err != nil || tokenString == "" {
			tokenString, _ = strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
			tokenString = strings.TrimSpace(tokenString)
		}

		if tokenString == "" {
			abortWithError(c, autherrors.ErrTokenNotFound)
			return
		}

		userID, err := verifier.Verify(tokenString)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ContextUserID, userID)
		c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), userID))

		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}
