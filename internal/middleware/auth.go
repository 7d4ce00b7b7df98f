package middleware

import (
	"net/http"
	"strings"

	"inkbook/internal/pkg/jwt"
	"inkbook/internal/pkg/response"
	"inkbook/internal/session"

	"github.com/gin-gonic/gin"
)

// JWTAuth decodes the bearer token into a session. The session goes into the
// request context; user_id and role are also set on the gin context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header required")
			return
		}
		token, ok := bearerToken(header)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Expected: Bearer <token>")
			return
		}

		sess, err := jwtService.Decode(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set("user_id", sess.AccountID)
		c.Set("role", string(sess.Role))
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
