package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskhub/internal/apperr"
	"taskhub/internal/config"
	"taskhub/internal/handler"
	"taskhub/internal/metrics"
	"taskhub/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	todoHandler *handler.TodoHandler,
	userHandler *handler.UserHandler,
	roleHandler *handler.RoleHandler,
	roleService service.RoleService,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
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

	secured.GET("/me", userHandler.Me)
	secured.PUT("/me", userHandler.UpdateMe)

	// Todo routes
	secured.POST("/todos", todoHandler.Create)
	secured.GET("/todos", todoHandler.List)
	secured.GET("/todos/stats", todoHandler.Stats)
	secured.GET("/todos/:id", todoHandler.Get)
	secured.PUT("/todos/:id", todoHandler.Update)
	secured.DELETE("/todos/:id", todoHandler.Delete)
	secured.POST("/todos/:id/toggle", todoHandler.Toggle)

	// Admin routes
	admin := secured.Group("/admin", requireAdmin(roleService))
	admin.GET("/todos", todoHandler.ListAll)
	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.Get)
	admin.PUT("/users/:id", userHandler.Update)
	admin.GET("/users/:id/roles", roleHandler.GetUserRoles)
	admin.PUT("/users/:id/roles", roleHandler.SetUserRoles)
	admin.POST("/users/:id/roles/:name", roleHandler.AssignUserRole)
	admin.DELETE("/users/:id/roles/:name", roleHandler.RemoveUserRole)
	admin.GET("/roles", roleHandler.List)
	admin.POST("/roles", roleHandler.Create)
	admin.PUT("/roles/:id", roleHandler.Update)
	admin.DELETE("/roles/:id", roleHandler.Delete)
	admin.GET("/roles/members", roleHandler.UsersWithRoles)
}

// requireAdmin rejects callers without the admin role.
func requireAdmin(roles service.RoleService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, apperr.ToResponse(apperr.Unauthorized("missing identity")))
			}
			claims, _ := token.Claims.(jwt.MapClaims)
			userID, _ := claims["user_id"].(string)
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, apperr.ToResponse(apperr.Unauthorized("missing user identity")))
			}

			isAdmin, err := roles.UserHasRole(c.Request().Context(), userID, "admin")
			if err != nil {
				return c.JSON(apperr.HTTPStatus(err), apperr.ToResponse(err))
			}
			if !isAdmin {
				return c.JSON(http.StatusForbidden, apperr.ToResponse(apperr.Forbidden("admin role required")))
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
