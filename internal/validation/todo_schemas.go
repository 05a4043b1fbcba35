package validation

import (
	"strings"

	"taskhub/internal/apperr"
)

// TodoCreate is the only payload TodoRepository.Create accepts.
type TodoCreate struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	UserID      string  `json:"-" validate:"required"`
}

// ParseTodoCreate trims and validates a create payload.
func ParseTodoCreate(in TodoCreate) (TodoCreate, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = trimPtr(in.Description)
	return parse(in)
}

// TodoContentUpdate narrows a content mutation to title and description.
// Nil fields are left untouched by the repository.
type TodoContentUpdate struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

// ParseTodoContentUpdate validates a content update. At least one field must
// be present.
func ParseTodoContentUpdate(in TodoContentUpdate) (TodoContentUpdate, error) {
	if in.Title == nil && in.Description == nil {
		return TodoContentUpdate{}, apperr.Validation("invalid input", map[string]string{
			"content": "at least one of title or description is required",
		})
	}
	in.Title = trimPtr(in.Title)
	in.Description = trimPtr(in.Description)
	return parse(in)
}

// TodoStatusUpdate narrows a status mutation to the completed flag.
type TodoStatusUpdate struct {
	Completed bool `json:"completed"`
}

// ParseTodoStatusUpdate validates a status update.
func ParseTodoStatusUpdate(in TodoStatusUpdate) (TodoStatusUpdate, error) {
	return parse(in)
}

// TodoTitleUpdate narrows a mutation to the title alone.
type TodoTitleUpdate struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// ParseTodoTitleUpdate trims and validates a title update.
func ParseTodoTitleUpdate(in TodoTitleUpdate) (TodoTitleUpdate, error) {
	in.Title = strings.TrimSpace(in.Title)
	return parse(in)
}

// TodoDescriptionUpdate narrows a mutation to the description alone. A nil
// description clears the stored value.
type TodoDescriptionUpdate struct {
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

// ParseTodoDescriptionUpdate trims and validates a description update.
func ParseTodoDescriptionUpdate(in TodoDescriptionUpdate) (TodoDescriptionUpdate, error) {
	in.Description = trimPtr(in.Description)
	return parse(in)
}
