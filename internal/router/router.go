package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"chatapi/internal/auth"
	"chatapi/internal/config"
	"chatapi/internal/handler"
	"chatapi/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	roomHandler *handler.RoomHandler,
	messageHandler *handler.MessageHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes, rate limited per client IP.
	public := api.Group("", middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.AuthRateLimit)),
	}))
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.POST("/auth/refresh", authHandler.Refresh)

	// Secured routes: JWT validation, then load the user row and bump
	// its last-activity timestamp.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
				return jwtService.ValidateToken(tokenString)
			},
		}),
		auth.CurrentUserMiddleware(userRepo),
	)

	// Auth routes
	secured.POST("/logout", authHandler.Logout)
	secured.GET("/me", authHandler.Me)
	secured.POST("/change-password", authHandler.ChangePassword)

	// Room routes
	secured.GET("/rooms", roomHandler.List)
	secured.POST("/rooms", roomHandler.Create)
	secured.GET("/rooms/:id", roomHandler.Show)
	secured.PUT("/rooms/:id", roomHandler.Update)
	secured.DELETE("/rooms/:id", roomHandler.Delete)
	secured.POST("/rooms/:id/join", roomHandler.Join)
	secured.POST("/rooms/:id/leave", roomHandler.Leave)
	secured.GET("/rooms/:id/members", roomHandler.Members)

	// Message routes
	secured.GET("/messages", messageHandler.List)
	secured.POST("/messages", messageHandler.Create)
	secured.GET("/messages/:id", messageHandler.Show)
	secured.PUT("/messages/:id", messageHandler.Update)
	secured.DELETE("/messages/:id", messageHandler.Delete)
	secured.GET("/rooms/:id/messages", messageHandler.RoomMessages)
	secured.POST("/rooms/:id/system-message", messageHandler.SendSystemMessage)

	// User routes
	secured.GET("/users", userHandler.List)
	secured.GET("/users/:id", userHandler.Show)
	secured.PUT("/users/:id", userHandler.Update)
	secured.DELETE("/users/:id", userHandler.Delete)
	secured.GET("/users/:id/rooms", userHandler.Rooms)
	secured.GET("/users/:id/messages", userHandler.Messages)
	secured.GET("/users/:id/statistics", userHandler.Statistics)
	secured.GET("/online-users", userHandler.OnlineUsers)
}

// requestLogger emits one structured log line per request.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
