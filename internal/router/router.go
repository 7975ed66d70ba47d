package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"evently/internal/auth"
	"evently/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	authMiddleware *auth.Middleware,
	authHandler *handler.AuthHandler,
	eventHandler *handler.EventHandler,
	signupHandler *handler.SignupHandler,
	userHandler *handler.UserHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/", handler.Overview)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.GET("/verify/:token", authHandler.Verify)
	e.POST("/login", authHandler.Login)
	e.POST("/resend-verification", authHandler.ResendVerification)
	e.GET("/events", eventHandler.ListEvents)
	e.GET("/events/:id/attendees", signupHandler.ListAttendees)
	e.GET("/users", userHandler.ListUsers)
	e.GET("/users/:id", userHandler.GetUser)

	// Optional auth: detail view renders viewer flags for signed-in callers.
	e.GET("/events/:id", eventHandler.GetEvent, authMiddleware.Optional)

	// Required auth
	e.GET("/profile", authHandler.Profile, authMiddleware.Required)
	e.GET("/my-events", signupHandler.MyEvents, authMiddleware.Required)
	e.GET("/my-created-events", eventHandler.MyCreatedEvents, authMiddleware.Required)
	e.POST("/upload", uploadHandler.UploadImage, authMiddleware.Required)
	e.POST("/events", eventHandler.CreateEvent, authMiddleware.Required)
	e.PUT("/events/:id", eventHandler.UpdateEvent, authMiddleware.Required)
	e.DELETE("/events/:id", eventHandler.DeleteEvent, authMiddleware.Required)
	e.DELETE("/events/:id/attendees/:aid", signupHandler.RemoveAttendee, authMiddleware.Required)
	e.POST("/events/:id/signup", signupHandler.SignUp, authMiddleware.Required)
	e.DELETE("/events/:id/signup", signupHandler.CancelSignup, authMiddleware.Required)
	e.GET("/users/:id/events", signupHandler.UserEvents, authMiddleware.Required)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
