package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskhub/internal/apperr"
)

func strP(s string) *string { return &s }

func TestParseTodoCreate(t *testing.T) {
	tests := []struct {
		name      string
		input     TodoCreate
		wantErr   bool
		wantField string
	}{
		{
			name:  "valid payload is trimmed",
			input: TodoCreate{Title: "  Buy groceries  ", UserID: "user-1"},
		},
		{
			name:      "whitespace-only title",
			input:     TodoCreate{Title: "   ", UserID: "user-1"},
			wantErr:   true,
			wantField: "title",
		},
		{
			name:      "title over 200 characters",
			input:     TodoCreate{Title: strings.Repeat("x", 201), UserID: "user-1"},
			wantErr:   true,
			wantField: "title",
		},
		{
			name: "description over 1000 characters",
			input: TodoCreate{
				Title:       "Valid",
				Description: strP(strings.Repeat("x", 1001)),
				UserID:      "user-1",
			},
			wantErr:   true,
			wantField: "description",
		},
		{
			name:      "missing owner",
			input:     TodoCreate{Title: "Valid"},
			wantErr:   true,
			wantField: "userid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ParseTodoCreate(tt.input)

			if tt.wantErr {
				assert.True(t, apperr.IsKind(err, apperr.KindValidation))
				var appErr *apperr.Error
				assert.ErrorAs(t, err, &appErr)
				assert.Contains(t, appErr.Fields, tt.wantField)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, strings.TrimSpace(tt.input.Title), out.Title)
			}
		})
	}
}

func TestParseTodoContentUpdate(t *testing.T) {
	t.Run("both fields absent", func(t *testing.T) {
		_, err := ParseTodoContentUpdate(TodoContentUpdate{})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("title alone is enough", func(t *testing.T) {
		out, err := ParseTodoContentUpdate(TodoContentUpdate{Title: strP(" New title ")})
		assert.NoError(t, err)
		assert.Equal(t, "New title", *out.Title)
		assert.Nil(t, out.Description)
	})

	t.Run("pointer to empty title is rejected", func(t *testing.T) {
		_, err := ParseTodoContentUpdate(TodoContentUpdate{Title: strP("")})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("empty description is a valid clear", func(t *testing.T) {
		out, err := ParseTodoContentUpdate(TodoContentUpdate{Description: strP("")})
		assert.NoError(t, err)
		assert.Equal(t, "", *out.Description)
	})
}

func TestParseTodoTitleUpdate(t *testing.T) {
	out, err := ParseTodoTitleUpdate(TodoTitleUpdate{Title: "  Trimmed  "})
	assert.NoError(t, err)
	assert.Equal(t, "Trimmed", out.Title)

	_, err = ParseTodoTitleUpdate(TodoTitleUpdate{Title: " "})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
