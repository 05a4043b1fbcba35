package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/service"
)

// UserHandler bundles user HTTP handlers.
type UserHandler struct {
	users service.UserService
	roles service.RoleService
}

// NewUserHandler creates a user handler layer.
func NewUserHandler(users service.UserService, roles service.RoleService) *UserHandler {
	return &UserHandler{users: users, roles: roles}
}

// ProfileResponse is a user together with their role names.
type ProfileResponse struct {
	User  *model.User `json:"user"`
	Roles []string    `json:"roles"`
}

// UpdateProfileRequest is the self-service subset of user updates. Status
// and roles are admin-only and deliberately absent.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Bio     *string `json:"bio"`
	Avatar  *string `json:"avatar"`
	Website *string `json:"website"`
}

// UserListResponse pairs a page of users with the total match count.
type UserListResponse struct {
	Users []model.User `json:"users"`
	Total int64        `json:"total"`
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.users.GetUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	roles, err := h.roles.GetUserRoleNames(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, ProfileResponse{User: user, Roles: roles})
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} model.User
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 409 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.UpdateUser(c.Request().Context(), userID, service.UpdateUserRequest{
		Name:    req.Name,
		Email:   req.Email,
		Bio:     req.Bio,
		Avatar:  req.Avatar,
		Website: req.Website,
	}, repository.Operator{ID: userID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// List godoc
// @Summary List users (admin)
// @Tags admin
// @Produce json
// @Param email query string false "Email substring"
// @Param role query string false "Role name"
// @Param limit query int false "Page size"
// @Param skip query int false "Offset"
// @Success 200 {object} UserListResponse
// @Failure 403 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	filter := repository.UserFilter{EmailContains: c.QueryParam("email")}
	if role := c.QueryParam("role"); role != "" {
		filter.RoleNames = []string{role}
	}

	opts := repository.ListOptions{Sort: c.QueryParam("sort")}
	var err error
	if v := c.QueryParam("limit"); v != "" {
		if opts.Limit, err = strconv.Atoi(v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}
	if v := c.QueryParam("skip"); v != "" {
		if opts.Skip, err = strconv.Atoi(v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid skip")
		}
	}

	ctx := c.Request().Context()
	users, err := h.users.ListUsers(ctx, filter, opts)
	if err != nil {
		return respondError(c, err)
	}
	total, err := h.users.CountUsers(ctx, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, UserListResponse{Users: users, Total: total})
}

// Get godoc
// @Summary Get a user by id (admin)
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id := c.Param("id")
	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	roles, err := h.roles.GetUserRoleNames(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ProfileResponse{User: user, Roles: roles})
}

// Update godoc
// @Summary Update any user (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body service.UpdateUserRequest true "Fields to change"
// @Success 200 {object} model.User
// @Failure 404 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	operator, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req service.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.UpdateUser(c.Request().Context(), c.Param("id"), req, repository.Operator{ID: operator})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
