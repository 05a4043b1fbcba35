package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskhub/internal/apperr"
	"taskhub/internal/db"
	"taskhub/internal/logger"
	"taskhub/internal/model"
	"taskhub/internal/validation"
)

// TodoListOptions controls user-scoped listing. The default sort is newest
// first by creation time.
type TodoListOptions struct {
	// IncludeCompleted filters out completed todos when set to false.
	IncludeCompleted *bool
	Limit            int
	Skip             int
	// Sort is "newest" (default) or "oldest".
	Sort string
}

// TodoFilter is the admin-scope filter for FindAll. It is not user-scoped.
type TodoFilter struct {
	UserID    string
	Completed *bool
}

// TodoRepository is the storage-agnostic todo contract. There is no generic
// update: every mutation is a dedicated, independently validated method, and
// every operation addressing a specific todo is scoped by (id, user id) so
// that absence and non-ownership are indistinguishable to the caller.
type TodoRepository interface {
	Create(ctx context.Context, input validation.TodoCreate, op Operator) (*model.Todo, error)
	// FindByID returns nil (not an error) when the todo is absent or owned
	// by a different user.
	FindByID(ctx context.Context, id, userID string) (*model.Todo, error)
	FindByUserID(ctx context.Context, userID string, opts TodoListOptions) ([]model.Todo, error)
	FindByStatus(ctx context.Context, userID string, completed bool) ([]model.Todo, error)
	FindAll(ctx context.Context, filter TodoFilter) ([]model.Todo, error)
	CountByUserID(ctx context.Context, userID string, completed *bool) (int64, error)
	UpdateContent(ctx context.Context, id string, input validation.TodoContentUpdate, userID string, op Operator) (*model.Todo, error)
	UpdateStatus(ctx context.Context, id string, input validation.TodoStatusUpdate, userID string, op Operator) (*model.Todo, error)
	UpdateTitle(ctx context.Context, id string, input validation.TodoTitleUpdate, userID string, op Operator) (*model.Todo, error)
	UpdateDescription(ctx context.Context, id string, input validation.TodoDescriptionUpdate, userID string, op Operator) (*model.Todo, error)
	ToggleCompletion(ctx context.Context, id, userID string, op Operator) (*model.Todo, error)
	Delete(ctx context.Context, id, userID string, op Operator) error
}

type todoRepository struct {
	adapter *db.Adapter
	log     *zap.Logger
}

// NewTodoRepository builds the canonical relational todo repository.
func NewTodoRepository(adapter *db.Adapter) TodoRepository {
	return &todoRepository{adapter: adapter, log: logger.Named("todo_repository")}
}

func (r *todoRepository) Create(ctx context.Context, input validation.TodoCreate, op Operator) (*model.Todo, error) {
	input, err := validation.ParseTodoCreate(input)
	if err != nil {
		return nil, err
	}

	todo := &model.Todo{
		ID:          r.adapter.NewID(),
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		UserID:      input.UserID,
	}
	if err := r.adapter.DB.WithContext(ctx).Create(todo).Error; err != nil {
		return nil, r.fail("todo.create", todo.ID, op, err)
	}

	recordAudit(ctx, r.adapter.DB, r.log, "todo", todo.ID, "create", op.resolve(r.log, "todo.create"))
	return todo, nil
}

func (r *todoRepository) FindByID(ctx context.Context, id, userID string) (*model.Todo, error) {
	var todo model.Todo
	err := r.adapter.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&todo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("todo.find_by_id", id, Operator{ID: userID}, err)
	}
	return &todo, nil
}

func (r *todoRepository) FindByUserID(ctx context.Context, userID string, opts TodoListOptions) ([]model.Todo, error) {
	q := r.adapter.DB.WithContext(ctx).Where("user_id = ?", userID)
	if opts.IncludeCompleted != nil && !*opts.IncludeCompleted {
		q = q.Where("completed = ?", false)
	}
	if opts.Sort == "oldest" {
		q = q.Order("created_at ASC")
	} else {
		q = q.Order("created_at DESC")
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Skip > 0 {
		q = q.Offset(opts.Skip)
	}

	var todos []model.Todo
	if err := q.Find(&todos).Error; err != nil {
		return nil, r.fail("todo.find_by_user_id", "", Operator{ID: userID}, err)
	}
	return todos, nil
}

func (r *todoRepository) FindByStatus(ctx context.Context, userID string, completed bool) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.adapter.DB.WithContext(ctx).
		Where("user_id = ? AND completed = ?", userID, completed).
		Order("created_at DESC").
		Find(&todos).Error
	if err != nil {
		return nil, r.fail("todo.find_by_status", "", Operator{ID: userID}, err)
	}
	return todos, nil
}

// FindAll is admin scope and deliberately not user-scoped.
func (r *todoRepository) FindAll(ctx context.Context, filter TodoFilter) ([]model.Todo, error) {
	q := r.adapter.DB.WithContext(ctx).Order("created_at DESC")
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Completed != nil {
		q = q.Where("completed = ?", *filter.Completed)
	}

	var todos []model.Todo
	if err := q.Find(&todos).Error; err != nil {
		return nil, r.fail("todo.find_all", "", Operator{}, err)
	}
	return todos, nil
}

func (r *todoRepository) CountByUserID(ctx context.Context, userID string, completed *bool) (int64, error) {
	q := r.adapter.DB.WithContext(ctx).Model(&model.Todo{}).Where("user_id = ?", userID)
	if completed != nil {
		q = q.Where("completed = ?", *completed)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, r.fail("todo.count_by_user_id", "", Operator{ID: userID}, err)
	}
	return count, nil
}

func (r *todoRepository) UpdateContent(ctx context.Context, id string, input validation.TodoContentUpdate, userID string, op Operator) (*model.Todo, error) {
	input, err := validation.ParseTodoContentUpdate(input)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	return r.updateOwned(ctx, id, userID, fields, "update_content", op)
}

func (r *todoRepository) UpdateStatus(ctx context.Context, id string, input validation.TodoStatusUpdate, userID string, op Operator) (*model.Todo, error) {
	input, err := validation.ParseTodoStatusUpdate(input)
	if err != nil {
		return nil, err
	}
	return r.updateOwned(ctx, id, userID, map[string]interface{}{"completed": input.Completed}, "update_status", op)
}

func (r *todoRepository) UpdateTitle(ctx context.Context, id string, input validation.TodoTitleUpdate, userID string, op Operator) (*model.Todo, error) {
	input, err := validation.ParseTodoTitleUpdate(input)
	if err != nil {
		return nil, err
	}
	return r.updateOwned(ctx, id, userID, map[string]interface{}{"title": input.Title}, "update_title", op)
}

func (r *todoRepository) UpdateDescription(ctx context.Context, id string, input validation.TodoDescriptionUpdate, userID string, op Operator) (*model.Todo, error) {
	input, err := validation.ParseTodoDescriptionUpdate(input)
	if err != nil {
		return nil, err
	}
	return r.updateOwned(ctx, id, userID, map[string]interface{}{"description": input.Description}, "update_description", op)
}

// ToggleCompletion negates the completed flag in a single conditional
// UPDATE scoped by (id, user id), then returns the post-image. Concurrent
// toggles cannot lose the negation, though the returned snapshot is still
// whichever state the re-read observes.
func (r *todoRepository) ToggleCompletion(ctx context.Context, id, userID string, op Operator) (*model.Todo, error) {
	res := r.adapter.DB.WithContext(ctx).
		Model(&model.Todo{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("completed", gorm.Expr("NOT completed"))
	if res.Error != nil {
		return nil, r.fail("todo.toggle_completion", id, op, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("todo not found")
	}

	recordAudit(ctx, r.adapter.DB, r.log, "todo", id, "toggle_completion", op.resolve(r.log, "todo.toggle_completion"))
	return r.reload(ctx, id, userID, "todo.toggle_completion")
}

// Delete verifies ownership with a separate existence check, then removes
// the record permanently.
func (r *todoRepository) Delete(ctx context.Context, id, userID string, op Operator) error {
	if err := r.ensureOwned(ctx, id, userID); err != nil {
		return err
	}

	res := r.adapter.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Todo{})
	if res.Error != nil {
		return r.fail("todo.delete", id, op, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("todo not found")
	}

	recordAudit(ctx, r.adapter.DB, r.log, "todo", id, "delete", op.resolve(r.log, "todo.delete"))
	return nil
}

// updateOwned applies the already-validated field set of a single dedicated
// mutation. The UPDATE itself is scoped by (id, user id); zero rows affected
// means absent or not owned.
func (r *todoRepository) updateOwned(ctx context.Context, id, userID string, fields map[string]interface{}, action string, op Operator) (*model.Todo, error) {
	operation := "todo." + action

	if err := r.ensureOwned(ctx, id, userID); err != nil {
		return nil, err
	}

	err := r.adapter.DB.WithContext(ctx).
		Model(&model.Todo{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields).Error
	if err != nil {
		return nil, r.fail(operation, id, op, err)
	}

	recordAudit(ctx, r.adapter.DB, r.log, "todo", id, action, op.resolve(r.log, operation))
	return r.reload(ctx, id, userID, operation)
}

func (r *todoRepository) ensureOwned(ctx context.Context, id, userID string) error {
	var count int64
	err := r.adapter.DB.WithContext(ctx).
		Model(&model.Todo{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	if err != nil {
		return r.fail("todo.ensure_owned", id, Operator{ID: userID}, err)
	}
	if count == 0 {
		return apperr.NotFound("todo not found")
	}
	return nil
}

func (r *todoRepository) reload(ctx context.Context, id, userID, operation string) (*model.Todo, error) {
	var todo model.Todo
	err := r.adapter.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&todo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("todo not found")
	}
	if err != nil {
		return nil, r.fail(operation, id, Operator{ID: userID}, err)
	}
	return &todo, nil
}

// fail logs the storage failure once with full context and wraps it in a
// generic persistence error.
func (r *todoRepository) fail(operation, id string, op Operator, err error) error {
	r.log.Error("todo repository failure",
		logger.Operation(operation),
		logger.TodoID(id),
		logger.Actor(op.ID),
		logger.Err(err))
	return apperr.Persistence(operation, err)
}
