package main

import (
	"net/http"

	_ "chatapi/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"chatapi/internal/auth"
	"chatapi/internal/cache"
	"chatapi/internal/config"
	"chatapi/internal/db"
	"chatapi/internal/handler"
	"chatapi/internal/logging"
	"chatapi/internal/model"
	"chatapi/internal/repository"
	"chatapi/internal/router"
	"chatapi/internal/service"
)

// @title Chat API
// @version 1.0
// @description Multi-room chat REST API with rooms, memberships, messages and role-based authorization.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logging.Init(cfg.IsDevelopment())

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Migration order matters: memberships and messages reference users
	// and rooms.
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Room{},
		&model.Membership{},
		&model.Message{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	roomRepo := repository.NewRoomRepository(gormDB)
	membershipRepo := repository.NewMembershipRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	roomService := service.NewRoomService(roomRepo, membershipRepo)
	messageService := service.NewMessageService(messageRepo, roomRepo, membershipRepo)
	userService := service.NewUserService(userRepo, roomRepo, membershipRepo, messageRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	roomHandler := handler.NewRoomHandler(roomService)
	messageHandler := handler.NewMessageHandler(messageService)
	userHandler := handler.NewUserHandler(userService)

	router.Register(
		e,
		cfg,
		jwtService,
		userRepo,
		authHandler,
		roomHandler,
		messageHandler,
		userHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("server starting")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
