package main

import (
	"context"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/logger"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/validation"
)

// Seeds the base roles and, when ADMIN_EMAIL/ADMIN_PASSWORD are set, an
// administrator account. All writes are attributed to the system identity.
func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("seed")

	gormDB, err := db.Connect(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
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

	adapter := db.NewAdapter(gormDB)
	userRepo := repository.NewUserRepository(adapter)
	roleRepo := repository.NewRoleRepository(adapter)

	ctx := context.Background()

	roles := []validation.RoleCreate{
		{Name: "user", Description: strPtr("standard account role")},
		{Name: "admin", Description: strPtr("full administrative access")},
	}
	for _, rc := range roles {
		existing, err := roleRepo.FindByName(ctx, rc.Name)
		if err != nil {
			log.Fatal("look up role", zap.String("role", rc.Name), zap.Error(err))
		}
		if existing != nil {
			log.Info("role already present", zap.String("role", rc.Name))
			continue
		}
		if _, err := roleRepo.Create(ctx, rc, repository.System); err != nil {
			log.Fatal("create role", zap.String("role", rc.Name), zap.Error(err))
		}
		log.Info("role created", zap.String("role", rc.Name))
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	admin, err := userRepo.FindByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatal("look up admin user", zap.Error(err))
	}
	if admin == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("hash admin password", zap.Error(err))
		}
		admin, err = userRepo.Create(ctx, validation.UserCreate{
			Email:        adminEmail,
			Name:         "Administrator",
			PasswordHash: string(hash),
		}, repository.System)
		if err != nil {
			log.Fatal("create admin user", zap.Error(err))
		}
		log.Info("admin user created", zap.String("email", adminEmail))
	}

	if err := roleRepo.SetUserRoles(ctx, admin.ID, validation.UserRolesUpdate{
		RoleNames: []string{"user", "admin"},
	}, repository.System); err != nil {
		log.Fatal("grant admin roles", zap.Error(err))
	}
	log.Info("admin roles granted", zap.String("user_id", admin.ID))
}

func strPtr(s string) *string {
	return &s
}
