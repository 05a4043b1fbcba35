package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"taskhub/internal/apperr"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/validation"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 1000
)

// UpdateTodoRequest carries the fields a caller wants to change. A nil field
// is absent and must never be touched.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TodoStats summarizes a user's todos.
type TodoStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

// TodoService exposes todo domain operations.
type TodoService interface {
	CreateTodo(ctx context.Context, userID, title string, description *string) (*model.Todo, error)
	GetTodo(ctx context.Context, id, userID string) (*model.Todo, error)
	ListTodos(ctx context.Context, userID string, opts repository.TodoListOptions) ([]model.Todo, error)
	ListTodosByStatus(ctx context.Context, userID string, completed bool) ([]model.Todo, error)
	ListAllTodos(ctx context.Context, filter repository.TodoFilter) ([]model.Todo, error)
	UpdateTodo(ctx context.Context, id, userID string, req UpdateTodoRequest) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id, userID string) error
	ToggleTodo(ctx context.Context, id, userID string) (*model.Todo, error)
	GetTodoStats(ctx context.Context, userID string) (*TodoStats, error)
}

type todoService struct {
	repo repository.TodoRepository
}

// NewTodoService builds a TodoService.
func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

// CreateTodo validates business rules and delegates to the repository. The
// checks deliberately duplicate schema validation: the service must hold its
// rules regardless of which repository implementation is wired in.
func (s *todoService) CreateTodo(ctx context.Context, userID, title string, description *string) (*model.Todo, error) {
	if userID == "" {
		return nil, apperr.Unauthorized("missing user identity")
	}
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, validation.TodoCreate{
		Title:       title,
		Description: description,
		UserID:      userID,
	}, repository.Operator{ID: userID})
}

func (s *todoService) GetTodo(ctx context.Context, id, userID string) (*model.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, apperr.NotFound("todo not found")
	}
	return todo, nil
}

func (s *todoService) ListTodos(ctx context.Context, userID string, opts repository.TodoListOptions) ([]model.Todo, error) {
	return s.repo.FindByUserID(ctx, userID, opts)
}

func (s *todoService) ListTodosByStatus(ctx context.Context, userID string, completed bool) ([]model.Todo, error) {
	return s.repo.FindByStatus(ctx, userID, completed)
}

func (s *todoService) ListAllTodos(ctx context.Context, filter repository.TodoFilter) ([]model.Todo, error) {
	return s.repo.FindAll(ctx, filter)
}

// UpdateTodo is a compound operation: content is written only when title or
// description actually changed, status only when completion changed. It is
// never an unconditional full-row rewrite.
func (s *todoService) UpdateTodo(ctx context.Context, id, userID string, req UpdateTodoRequest) (*model.Todo, error) {
	current, err := s.GetTodo(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	op := repository.Operator{ID: userID}

	content := validation.TodoContentUpdate{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		if title != current.Title {
			content.Title = &title
		}
	}
	if req.Description != nil {
		if err := validateDescription(req.Description); err != nil {
			return nil, err
		}
		if current.Description == nil || *req.Description != *current.Description {
			content.Description = req.Description
		}
	}

	result := current
	if content.Title != nil || content.Description != nil {
		result, err = s.repo.UpdateContent(ctx, id, content, userID, op)
		if err != nil {
			return nil, err
		}
	}

	if req.Completed != nil && *req.Completed != current.Completed {
		result, err = s.repo.UpdateStatus(ctx, id, validation.TodoStatusUpdate{Completed: *req.Completed}, userID, op)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID, repository.Operator{ID: userID})
}

func (s *todoService) ToggleTodo(ctx context.Context, id, userID string) (*model.Todo, error) {
	return s.repo.ToggleCompletion(ctx, id, userID, repository.Operator{ID: userID})
}

// GetTodoStats runs the total and completed counts concurrently; pending is
// derived, not a third query.
func (s *todoService) GetTodoStats(ctx context.Context, userID string) (*TodoStats, error) {
	var total, completed int64
	completedTrue := true

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.CountByUserID(gctx, userID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.repo.CountByUserID(gctx, userID, &completedTrue)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &TodoStats{
		Total:     total,
		Completed: completed,
		Pending:   total - completed,
	}, nil
}

func validateTitle(title string) error {
	if title == "" {
		return apperr.Validation("invalid input", map[string]string{"title": "is required"})
	}
	if len(title) > maxTitleLength {
		return apperr.Validation("invalid input", map[string]string{"title": "must be at most 200 characters"})
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && len(*description) > maxDescriptionLength {
		return apperr.Validation("invalid input", map[string]string{"description": "must be at most 1000 characters"})
	}
	return nil
}
