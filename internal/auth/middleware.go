package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"chatapi/internal/model"
	"chatapi/internal/repository"
)

// contextUserKey is where the loaded user is stored on the echo context.
const contextUserKey = "current_user"

// claimsContextKey is where echo-jwt puts the parsed token claims.
const claimsContextKey = "user"

// CurrentUserMiddleware resolves the authenticated user row from the JWT
// claims, stores it on the context, and bumps the user's last-activity
// timestamp. It must run after the JWT middleware.
func CurrentUserMiddleware(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "user no longer exists")
			}

			// Activity tracking is best effort; the request proceeds even
			// if the touch fails.
			if err := users.TouchActivity(c.Request().Context(), user.ID); err != nil {
				log.Warn().Err(err).Uint("user_id", user.ID).Msg("touch activity failed")
			}

			c.Set(contextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user loaded by CurrentUserMiddleware, or nil on
// unauthenticated routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(contextUserKey).(*model.User)
	return user
}
