package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/bedspace/backend/internal/handler"    // handlers implement the endpoint logic
	"github.com/bedspace/backend/internal/middleware" // middleware for JWT authentication and role enforcement
	"github.com/bedspace/backend/internal/model"      // canonical role names
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account routes under /api/auth.  Register and
// login are open (the register handler gates privileged roles internally,
// since the check depends on the request body); the user-management routes
// are admin only.  The rate limiter protects the credential endpoints
// against brute forcing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register, limiter)
	g.POST("/login", a.Login, limiter)

	// Admin user management lives under /api/auth/users.
	users := g.Group("/users")
	users.Use(middleware.JWTAuth(jwtSecret))
	users.Use(middleware.RequireRole(model.RoleAdmin))
	users.GET("", a.ListUsers)
	users.POST("", a.CreateUser)
	users.PUT("/:id", a.UpdateUser)
	users.DELETE("/:id", a.DeleteUser)
	// Tenant accounts are also addressable by their tenant identifier.
	users.PUT("/tenant/:tenantId", a.UpdateTenant)
	users.DELETE("/tenant/:tenantId", a.DeleteTenant)
}

// RegisterListings registers the listing routes under /api/listings.
// Browse, detail, booking and the payment callback are public; create,
// update and delete require a landlord or admin token.
func RegisterListings(e *echo.Echo, l *handler.ListingHandler, jwtSecret string) {
	g := e.Group("/api/listings")

	auth := middleware.JWTAuth(jwtSecret)
	landlordOrAdmin := middleware.RequireRole(model.RoleLandlord, model.RoleAdmin)

	g.GET("", l.List)
	g.POST("", l.Create, auth, landlordOrAdmin)
	g.POST("/payment/success", l.PaymentSuccess)
	g.GET("/:id", l.Get)
	g.PUT("/:id", l.Update, auth, landlordOrAdmin)
	g.DELETE("/:id", l.Delete, auth, landlordOrAdmin)
	g.POST("/:id/book", l.Book)
}

// RegisterPayments registers the assignment and billing routes under
// /api/payments.  Each route carries its own role predicate: assignment
// and reporting are for landlords and admins, paying is for tenants, and
// payment edits are admin only.
func RegisterPayments(e *echo.Echo, p *handler.PaymentHandler, jwtSecret string) {
	g := e.Group("/api/payments")
	g.Use(middleware.JWTAuth(jwtSecret))

	landlordOrAdmin := middleware.RequireRole(model.RoleLandlord, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	g.POST("/assign", p.Assign, landlordOrAdmin)
	g.POST("/pay", p.Pay, middleware.RequireRole(model.RoleTenant))
	g.GET("/payments/tenant/:tenantId", p.ListForTenant, landlordOrAdmin)
	g.PUT("/payments/:paymentId", p.UpdatePayment, adminOnly)
	g.DELETE("/payments/:paymentId", p.DeletePayment, adminOnly)
	g.GET("/landlord/tenants-payments", p.TenantsPayments, landlordOrAdmin)
}
