package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"kusgan/internal/config"
	"kusgan/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	memberHandler *handler.MemberHandler,
	presenceHandler *handler.PresenceHandler,
	announcementHandler *handler.AnnouncementHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/me", authHandler.Me)

	// Member directory routes; mutations are admin-gated in the handler.
	secured.GET("/members", memberHandler.List)
	secured.POST("/members", memberHandler.Add)
	secured.DELETE("/members", memberHandler.Delete)
	secured.GET("/members/:id", memberHandler.Get)
	secured.PATCH("/members/:id", memberHandler.Update)
	secured.PATCH("/members/:id/permissions", memberHandler.UpdatePermission)

	// Presence routes
	secured.GET("/presence/today", presenceHandler.Today)

	// Announcement routes
	secured.GET("/announcements", announcementHandler.List)
	secured.POST("/announcements", announcementHandler.Create)

	// Dashboard summary
	secured.GET("/dashboard", dashboardHandler.Summary)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
