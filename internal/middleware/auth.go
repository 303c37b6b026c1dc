package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studykit/studykit/internal/errs"
	"github.com/studykit/studykit/internal/lib/token"
	"github.com/studykit/studykit/internal/server"
)

// AuthMiddleware enforces JWT bearer authentication.
type AuthMiddleware struct {
	server *server.Server
	tokens *token.Manager
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	tokens := token.NewManager(
		s.Config.Auth.SecretKey,
		time.Duration(s.Config.Auth.TokenTTLHours)*time.Hour,
	)

	return &AuthMiddleware{
		server: s,
		tokens: tokens,
	}
}

// RequireAuth validates the Authorization bearer token and stores the
// authenticated identity in Echo context for handlers and downstream
// middleware. Missing or invalid tokens short-circuit with 401.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return errs.NewUnauthorizedError("Missing authorization header", false)
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return errs.NewUnauthorizedError("Invalid authorization header", false)
		}

		claims, err := auth.tokens.Verify(parts[1])
		if err != nil {
			auth.server.Logger.Warn().
				Err(err).
				Str("request_id", GetRequestID(c)).
				Msg("token verification failed")

			return errs.NewUnauthorizedError("Invalid or expired token", false)
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)

		return next(c)
	}
}
