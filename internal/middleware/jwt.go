// Package middleware holds the echo middleware shared by the API routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Edonabdullahu1/city-sub003/internal/utils"
)

// Context keys set by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// JWTAuth validates a Bearer access token and stores the user id (uint64)
// and role (string) on the echo context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			uid, role, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(CtxUserID, uid)
			c.Set(CtxRole, role)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id, or 0 for anonymous requests.
func UserID(c echo.Context) uint64 {
	if v, ok := c.Get(CtxUserID).(uint64); ok {
		return v
	}
	return 0
}

// Role returns the authenticated role, or "" for anonymous requests.
func Role(c echo.Context) string {
	r, _ := c.Get(CtxRole).(string)
	return r
}
