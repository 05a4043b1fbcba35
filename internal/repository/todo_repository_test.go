package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"taskhub/internal/apperr"
	"taskhub/internal/validation"
)

func todoColumns() []string {
	return []string{"id", "title", "description", "completed", "user_id"}
}

func TestTodoRepository_Create(t *testing.T) {
	t.Run("persists and audits", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewTodoRepository(adapter)

		mock.ExpectExec("INSERT INTO `todos`").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO `audit_logs`").WillReturnResult(sqlmock.NewResult(0, 1))

		todo, err := repo.Create(context.Background(), validation.TodoCreate{
			Title:  "Buy groceries",
			UserID: "user-1",
		}, Operator{ID: "user-1"})

		assert.NoError(t, err)
		assert.NotEmpty(t, todo.ID)
		assert.False(t, todo.Completed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid input never reaches the database", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewTodoRepository(adapter)

		todo, err := repo.Create(context.Background(), validation.TodoCreate{
			Title:  "   ",
			UserID: "user-1",
		}, Operator{ID: "user-1"})

		assert.Nil(t, todo)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoRepository_FindByID(t *testing.T) {
	t.Run("scoped to the owner", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewTodoRepository(adapter)

		mock.ExpectQuery("SELECT \\* FROM `todos` WHERE id = \\? AND user_id = \\?").
			WillReturnRows(sqlmock.NewRows(todoColumns()).
				AddRow("todo-1", "Buy groceries", nil, false, "user-1"))

		todo, err := repo.FindByID(context.Background(), "todo-1", "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "todo-1", todo.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absence and non-ownership look identical", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewTodoRepository(adapter)

		mock.ExpectQuery("SELECT \\* FROM `todos` WHERE id = \\? AND user_id = \\?").
			WillReturnRows(sqlmock.NewRows(todoColumns()))

		todo, err := repo.FindByID(context.Background(), "todo-1", "someone-else")

		assert.NoError(t, err)
		assert.Nil(t, todo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoRepository_UpdateTitle(t *testing.T) {
	t.Run("updates an owned todo", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewTodoRepository(adapter)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `todos` WHERE id = \\? AND user_id = \\?").
			WithArgs("todo-1", "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
		mock.ExpectExec("UPDATE `todos` SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO `audit_logs`").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT \\* FROM `todos` WHERE id = \\? AND user_id = \\?").
			WillReturnRows(sqlmock.NewRows(todoColumns()).
				AddRow("todo-1", "New title", nil, false, "user-1"))

		todo, err := repo.UpdateTitle(context.Background(), "todo-1", validation.TodoTitleUpdate{
			Title: "New title",
		}, "user-1", Operator{ID: "user-1"})

		assert.NoError(t, err)
		assert.Equal(t, "New title", todo.Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("someone else's todo is not found", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewTodoRepository(adapter)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `todos` WHERE id = \\? AND user_id = \\?").
			WithArgs("todo-1", "intruder").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

		todo, err := repo.UpdateTitle(context.Background(), "todo-1", validation.TodoTitleUpdate{
			Title: "Hijacked",
		}, "intruder", Operator{ID: "intruder"})

		assert.Nil(t, todo)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoRepository_ToggleCompletion(t *testing.T) {
	t.Run("negates in a single conditional update", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewTodoRepository(adapter)

		mock.ExpectExec("UPDATE `todos` SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO `audit_logs`").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT \\* FROM `todos` WHERE id = \\? AND user_id = \\?").
			WillReturnRows(sqlmock.NewRows(todoColumns()).
				AddRow("todo-1", "Buy groceries", nil, true, "user-1"))

		todo, err := repo.ToggleCompletion(context.Background(), "todo-1", "user-1", Operator{ID: "user-1"})

		assert.NoError(t, err)
		assert.True(t, todo.Completed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero affected rows means not found", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewTodoRepository(adapter)

		mock.ExpectExec("UPDATE `todos` SET").WillReturnResult(sqlmock.NewResult(0, 0))

		todo, err := repo.ToggleCompletion(context.Background(), "todo-9", "user-1", Operator{ID: "user-1"})

		assert.Nil(t, todo)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoRepository_Delete(t *testing.T) {
	adapter, mock := newTestAdapter(t)
	repo := NewTodoRepository(adapter)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `todos` WHERE id = \\? AND user_id = \\?").
		WithArgs("todo-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectExec("DELETE FROM `todos` WHERE id = \\? AND user_id = \\?").
		WithArgs("todo-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `audit_logs`").WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "todo-1", "user-1", Operator{ID: "user-1"})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_CountByUserID(t *testing.T) {
	adapter, mock := newTestAdapter(t)
	repo := NewTodoRepository(adapter)

	completed := true
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `todos` WHERE user_id = \\? AND completed = \\?").
		WithArgs("user-1", true).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	count, err := repo.CountByUserID(context.Background(), "user-1", &completed)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
