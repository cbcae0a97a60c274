// Package router defines how HTTP routes are registered for the API.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/movierental/backend/internal/handler"
	"github.com/movierental/backend/internal/middleware"
	"github.com/movierental/backend/internal/model"
)

// RegisterRoutes registers routes that need no authentication: the
// health check and the public movie catalogue reads.
func RegisterRoutes(e *echo.Echo, m *handler.MovieHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/api/movies", m.List)
	e.GET("/api/movies/:id", m.Get)
}

// RegisterAuth registers the credential endpoints and the protected
// /api/users/me route. The redis-backed limiter damps brute force
// attempts on register and login; a nil client disables it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rdb *redis.Client, max int, window time.Duration, jwtSecret string) {
	g := e.Group("/api/auth", middleware.RateLimit(rdb, max, window))
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	users := e.Group("/api/users", middleware.JWTAuth(jwtSecret))
	users.GET("/me", a.Me)
}

// RegisterMovies registers the bearer-protected movie mutations. The
// public list/get routes live in RegisterRoutes.
func RegisterMovies(e *echo.Echo, m *handler.MovieHandler, jwtSecret string) {
	g := e.Group("/api/movies", middleware.JWTAuth(jwtSecret))
	g.POST("", m.Create)
	g.PUT("/:id", m.Update)
	g.DELETE("/:id", m.Delete)
	g.POST("/:id/upload", m.UploadPoster)
}

// RegisterApplications registers the rental application endpoints. All
// of them require a valid token.
func RegisterApplications(e *echo.Echo, a *handler.ApplicationHandler, jwtSecret string) {
	g := e.Group("/api/applications", middleware.JWTAuth(jwtSecret))
	g.POST("", a.Create)
	g.GET("", a.List)
	g.GET("/user", a.ListMine)
	g.PUT("/:id/status", a.UpdateStatus)
	g.POST("/:id/upload", a.UploadImage)
}

// RegisterChats registers the chat endpoints. Listing pending or
// accepted chats is employee-only; everything else only needs a valid
// token.
func RegisterChats(e *echo.Echo, ch *handler.ChatHandler, jwtSecret string) {
	g := e.Group("/api/chats", middleware.JWTAuth(jwtSecret))
	g.POST("/start", ch.Start)
	g.GET("/pending", ch.Pending, middleware.RequireRole(model.RoleEmployee))
	g.GET("/accepted", ch.Accepted, middleware.RequireRole(model.RoleEmployee))
	g.POST("/:id/accept", ch.Accept)
	g.POST("/:id/message", ch.Message)
	g.GET("/:id", ch.Get)
}
