package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/Edonabdullahu1/city-sub003/internal/handler"
	"github.com/Edonabdullahu1/city-sub003/internal/middleware"
	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// RegisterRoutes registers routes that need neither authentication nor
// rate limiting.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	// load balancers poll this
	e.GET("/healthz", h.Health)
}

// RegisterAuth registers the session endpoints.  Login, refresh and logout
// live under /api/auth; /api/me needs a valid access token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/api/auth", limit)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	e.GET("/api/me", a.Me, middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin, model.RoleAgent, model.RoleCustomer))
}

// RegisterPackages registers the browse, search and quote endpoints.  Only
// search goes through the response cache; the detail endpoint is served
// from the matrix cache and quotes are always computed live.
func RegisterPackages(e *echo.Echo, p *handler.PackageHandler, limit, cache echo.MiddlewareFunc) {
	g := e.Group("/api", limit)
	g.GET("/packages/search", p.Search, cache)
	g.GET("/public/packages/:slug", p.GetBySlug)
	g.POST("/packages/:id/quote", p.Quote)
}
