package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskhub/internal/metrics"
	"taskhub/internal/repository"
	"taskhub/internal/service"
)

// TodoHandler bundles todo HTTP handlers.
type TodoHandler struct {
	svc service.TodoService
}

// NewTodoHandler creates a todo handler layer.
func NewTodoHandler(svc service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// CreateTodoRequest represents a todo creation request.
type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

// Create godoc
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param request body CreateTodoRequest true "Todo payload"
// @Success 201 {object} model.Todo
// @Failure 400 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.svc.CreateTodo(c.Request().Context(), userID, req.Title, req.Description)
	if err != nil {
		metrics.ObserveTodoMutation("create", "error")
		return respondError(c, err)
	}

	metrics.ObserveTodoMutation("create", "ok")
	return c.JSON(http.StatusCreated, todo)
}

// List godoc
// @Summary List the caller's todos
// @Tags todos
// @Produce json
// @Param completed query bool false "Only todos with exactly this completion state"
// @Param include_completed query bool false "Include completed todos (default true)"
// @Param limit query int false "Page size"
// @Param skip query int false "Offset"
// @Param sort query string false "newest or oldest"
// @Success 200 {array} model.Todo
// @Security BearerAuth
// @Router /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	if v := c.QueryParam("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid completed")
		}
		todos, err := h.svc.ListTodosByStatus(c.Request().Context(), userID, completed)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, todos)
	}

	opts := repository.TodoListOptions{Sort: c.QueryParam("sort")}
	if v := c.QueryParam("include_completed"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid include_completed")
		}
		opts.IncludeCompleted = &include
	}
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

	todos, err := h.svc.ListTodos(c.Request().Context(), userID, opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, todos)
}

// Get godoc
// @Summary Get a todo by id
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 404 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	todo, err := h.svc.GetTodo(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, todo)
}

// Update godoc
// @Summary Update a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body service.UpdateTodoRequest true "Fields to change"
// @Success 200 {object} model.Todo
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 404 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req service.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	todo, err := h.svc.UpdateTodo(c.Request().Context(), c.Param("id"), userID, req)
	if err != nil {
		metrics.ObserveTodoMutation("update", "error")
		return respondError(c, err)
	}

	metrics.ObserveTodoMutation("update", "ok")
	return c.JSON(http.StatusOK, todo)
}

// Delete godoc
// @Summary Delete a todo
// @Tags todos
// @Param id path string true "Todo ID"
// @Success 204
// @Failure 404 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.svc.DeleteTodo(c.Request().Context(), c.Param("id"), userID); err != nil {
		metrics.ObserveTodoMutation("delete", "error")
		return respondError(c, err)
	}

	metrics.ObserveTodoMutation("delete", "ok")
	return c.NoContent(http.StatusNoContent)
}

// Toggle godoc
// @Summary Toggle a todo's completion
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 404 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /todos/{id}/toggle [post]
func (h *TodoHandler) Toggle(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	todo, err := h.svc.ToggleTodo(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		metrics.ObserveTodoMutation("toggle", "error")
		return respondError(c, err)
	}

	metrics.ObserveTodoMutation("toggle", "ok")
	return c.JSON(http.StatusOK, todo)
}

// Stats godoc
// @Summary Get the caller's todo counts
// @Tags todos
// @Produce json
// @Success 200 {object} service.TodoStats
// @Security BearerAuth
// @Router /todos/stats [get]
func (h *TodoHandler) Stats(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	stats, err := h.svc.GetTodoStats(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListAll godoc
// @Summary List todos across all users (admin)
// @Tags admin
// @Produce json
// @Param user_id query string false "Filter by owner"
// @Param completed query bool false "Filter by completion"
// @Success 200 {array} model.Todo
// @Failure 403 {object} apperr.ErrorResponse
// @Security BearerAuth
// @Router /admin/todos [get]
func (h *TodoHandler) ListAll(c echo.Context) error {
	filter := repository.TodoFilter{UserID: c.QueryParam("user_id")}
	if v := c.QueryParam("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid completed")
		}
		filter.Completed = &completed
	}

	todos, err := h.svc.ListAllTodos(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, todos)
}
