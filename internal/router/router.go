package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"                             // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus/promhttp" // Prometheus scrape endpoint

	"github.com/iliyamo/barber-loyalty/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/barber-loyalty/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the Prometheus scrape
// endpoint.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring probe this to verify the service is up.
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	// Self-registration always produces a CUSTOMER account.
	g.POST("/register", a.Register)
	// Admin registration is gated by the shared ADMIN_SECRET_KEY.
	g.POST("/register/admin", a.RegisterAdmin)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access only issues a new
	// access token and leaves the session token in place.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes the refresh token in the body, so it needs no JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(handler.RoleAdmin, handler.RoleCustomer))
	auth.GET("/me", a.Me)
	// Revokes every active refresh token of the caller.
	auth.POST("/logout-all", a.LogoutAll)
}

// RegisterCatalog registers the unauthenticated haircut browse endpoints.
// The supplied middleware (response cache, rate limiter) is applied to the
// whole group; pass none to register the routes bare.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1/haircuts", mw...)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

// RegisterCustomer registers the customer loyalty surface.  Every route
// requires a valid access token with the CUSTOMER role.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerLoyaltyHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(handler.RoleCustomer))

	// Record a booked haircut as a pending ledger entry.
	g.POST("/purchases", h.CreatePurchase)
	// Balance plus the approved entries behind it.
	g.GET("/points", h.GetPoints)
	// Exchange points for a coupon.
	g.POST("/coupons/redeem", h.Redeem)
	g.GET("/my-coupons", h.MyCoupons)
	// Client-facing settings (coupon cost).
	g.GET("/config", h.GetConfig)
}

// RegisterAdmin registers the admin review queue, coupon desk and catalog
// management.  Every route requires the ADMIN role.
func RegisterAdmin(e *echo.Echo, l *handler.AdminLoyaltyHandler, cat *handler.AdminCatalogHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(handler.RoleAdmin))

	// Ledger review.
	g.GET("/transactions", l.ListTransactions)
	g.GET("/transactions/pending", l.ListPending)
	g.PATCH("/transactions/:id", l.Review)

	// Coupon desk.
	g.POST("/coupons", l.GrantCoupon)
	g.GET("/coupons", l.ListCoupons)
	g.POST("/coupons/verify", l.VerifyCoupon)

	// Catalog management.
	g.POST("/haircuts", cat.Create)
	g.PUT("/haircuts/:id", cat.Update)
	g.DELETE("/haircuts/:id", cat.Delete)
}
