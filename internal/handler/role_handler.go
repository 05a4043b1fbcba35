package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskhub/internal/repository"
	"taskhub/internal/service"
)

// RoleHandler bundles role administration handlers.
type RoleHandler struct {
	roles service.RoleService
}

// NewRoleHandler creates a role handler layer.
func NewRoleHandler(roles service.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// CreateRoleRequest represents a role creation request.
type CreateRoleRequest struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description" validate:"omitnil,max=255"`
}

// SetUserRolesRequest replaces a user's full role set.
type SetUserRolesRequest struct {
	RoleNames []string `json:"role_names" validate:"required,min=1"`
}

// Create godoc
// @Summary Create a role (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateRoleRequest true "Role payload"
// @Success 201 {object} model.Role
// @Failure 409 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /admin/roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	operator, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roles.CreateRole(c.Request().Context(), req.Name, req.Description, repository.Operator{ID: operator})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, role)
}

// List godoc
// @Summary List roles (admin)
// @Tags admin
// @Produce json
// @Success 200 {array} model.Role
// @Security BearerAuth
// @Router /admin/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roles.ListRoles(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, roles)
}

// UpdateRoleRequest narrows a role update to its description.
type UpdateRoleRequest struct {
	Description *string `json:"description" validate:"omitnil,max=255"`
}

// Update godoc
// @Summary Update a role's description (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param request body UpdateRoleRequest true "Role payload"
// @Success 200 {object} model.Role
// @Failure 404 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /admin/roles/{id} [put]
func (h *RoleHandler) Update(c echo.Context) error {
	operator, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	role, err := h.roles.UpdateRoleDescription(c.Request().Context(), c.Param("id"), req.Description, repository.Operator{ID: operator})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, role)
}

// Delete godoc
// @Summary Delete a role (admin)
// @Tags admin
// @Param id path string true "Role ID"
// @Success 204
// @Failure 404 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /admin/roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	operator, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.roles.DeleteRole(c.Request().Context(), c.Param("id"), repository.Operator{ID: operator}); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetUserRoles godoc
// @Summary Get a user's role names (admin)
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} string
// @Security BearerAuth
// @Router /admin/users/{id}/roles [get]
func (h *RoleHandler) GetUserRoles(c echo.Context) error {
	names, err := h.roles.GetUserRoleNames(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, names)
}

// SetUserRoles godoc
// @Summary Replace a user's role set (admin)
// @Tags admin
// @Accept json
// @Param id path string true "User ID"
// @Param request body SetUserRolesRequest true "Role names"
// @Success 204
// @Failure 404 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/roles [put]
func (h *RoleHandler) SetUserRoles(c echo.Context) error {
	operator, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req SetUserRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.roles.SetUserRoles(c.Request().Context(), c.Param("id"), req.RoleNames, repository.Operator{ID: operator}); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignUserRole godoc
// @Summary Grant a role to a user (admin)
// @Tags admin
// @Param id path string true "User ID"
// @Param name path string true "Role name"
// @Success 204
// @Failure 404 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/roles/{name} [post]
func (h *RoleHandler) AssignUserRole(c echo.Context) error {
	operator, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.roles.AssignRole(c.Request().Context(), c.Param("id"), c.Param("name"), repository.Operator{ID: operator}); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveUserRole godoc
// @Summary Revoke a role from a user (admin)
// @Tags admin
// @Param id path string true "User ID"
// @Param name path string true "Role name"
// @Success 204
// @Failure 404 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/roles/{name} [delete]
func (h *RoleHandler) RemoveUserRole(c echo.Context) error {
	operator, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.roles.RemoveRole(c.Request().Context(), c.Param("id"), c.Param("name"), repository.Operator{ID: operator}); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UsersWithRoles godoc
// @Summary List users holding roles (admin)
// @Tags admin
// @Produce json
// @Param roles query string true "Comma-separated role names"
// @Param all query bool false "Require all roles rather than any"
// @Success 200 {array} model.User
// @Security BearerAuth
// @Router /admin/roles/members [get]
func (h *RoleHandler) UsersWithRoles(c echo.Context) error {
	names := splitNonEmpty(c.QueryParam("roles"))
	if len(names) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "roles query parameter is required")
	}

	hasAll := false
	if v := c.QueryParam("all"); v != "" {
		var err error
		if hasAll, err = strconv.ParseBool(v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid all")
		}
	}

	users, err := h.roles.UsersWithRoles(c.Request().Context(), names, hasAll)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}
