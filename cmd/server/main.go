package main

import (
	"net/http"
	"os"

	_ "taskhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"taskhub/internal/auth"
	"taskhub/internal/cache"
	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/handler"
	"taskhub/internal/logger"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/router"
	"taskhub/internal/service"
)

// @title TaskHub API
// @version 1.0
// @description Multi-tenant task manager with JWT authentication and role-based administration.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("server")

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.Connect(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Warn("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.AuditLog{},
			&model.UserRole{},
			&model.Todo{},
			&model.Role{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn("drop table failed (may not exist)", zap.Error(err))
			}
		}
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Todo{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	adapter := db.NewAdapter(gormDB)

	// Repositories
	todoRepo := repository.NewTodoRepository(adapter)
	userRepo := repository.NewUserRepository(adapter)
	roleRepo := repository.NewRoleRepository(adapter)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	todoService := service.NewTodoService(todoRepo)
	userService := service.NewUserService(userRepo, cacheClient)
	roleService := service.NewRoleService(roleRepo, userRepo)
	authService := service.NewAuthService(userService, userRepo, roleRepo, jwtService, tokenStore)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)
	userHandler := handler.NewUserHandler(userService, roleService)
	roleHandler := handler.NewRoleHandler(roleService)

	router.Register(e, cfg, authHandler, todoHandler, userHandler, roleHandler, roleService)

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
	}
	log.Info("swagger ui", zap.String("url", swaggerURL))

	addr := ":" + cfg.ServerPort
	log.Info("starting server", zap.String("addr", addr))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal("server start", zap.Error(err))
	}
}
