package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"taskhub/internal/apperr"
	"taskhub/internal/validation"
)

func userColumns() []string {
	return []string{"id", "email", "name", "password_hash", "is_active"}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewUserRepository(adapter)

		mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow("user-1", "test@example.com", "Test User", "hash", true))

		user, err := repo.FindByEmail(context.Background(), "test@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss is nil, not an error", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewUserRepository(adapter)

		mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
			WillReturnRows(sqlmock.NewRows(userColumns()))

		user, err := repo.FindByEmail(context.Background(), "nobody@example.com")

		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_UpdateEmail(t *testing.T) {
	t.Run("malformed email never reaches the database", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewUserRepository(adapter)

		user, err := repo.UpdateEmail(context.Background(), "user-1", validation.UserEmailUpdate{
			Email: "not-an-email",
		}, Operator{ID: "admin-1"})

		assert.Nil(t, user)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates an existing user", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewUserRepository(adapter)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE id = \\?").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
		mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO `audit_logs`").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\?").
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow("user-1", "new@example.com", "Test User", "hash", true))

		user, err := repo.UpdateEmail(context.Background(), "user-1", validation.UserEmailUpdate{
			Email: "new@example.com",
		}, Operator{ID: "admin-1"})

		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent user is not found", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewUserRepository(adapter)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE id = \\?").
			WithArgs("user-9").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

		user, err := repo.UpdateEmail(context.Background(), "user-9", validation.UserEmailUpdate{
			Email: "new@example.com",
		}, Operator{ID: "admin-1"})

		assert.Nil(t, user)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_UpdateRoles(t *testing.T) {
	t.Run("replaces the role set transactionally", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewUserRepository(adapter)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE id = \\?").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
		mock.ExpectQuery("SELECT \\* FROM `roles` WHERE name IN").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow("role-1", "user").
				AddRow("role-2", "admin"))
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `user_roles` WHERE user_id = \\?").
			WithArgs("user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO `user_roles`").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()
		mock.ExpectExec("INSERT INTO `audit_logs`").WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateRoles(context.Background(), "user-1", validation.UserRolesUpdate{
			RoleNames: []string{"user", "admin"},
		}, Operator{ID: "admin-1"})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unresolvable role name fails the whole request", func(t *testing.T) {
		adapter, mock := newTestAdapter(t)
		repo := NewUserRepository(adapter)

		mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE id = \\?").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
		mock.ExpectQuery("SELECT \\* FROM `roles` WHERE name IN").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow("role-1", "user"))

		err := repo.UpdateRoles(context.Background(), "user-1", validation.UserRolesUpdate{
			RoleNames: []string{"user", "ghost"},
		}, Operator{ID: "admin-1"})

		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_CountWithRoleFilter(t *testing.T) {
	adapter, mock := newTestAdapter(t)
	repo := NewUserRepository(adapter)

	// Role membership is a single statement with an inlined join subquery.
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE id IN \\(SELECT user_roles.user_id FROM `user_roles` JOIN roles").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	count, err := repo.Count(context.Background(), UserFilter{RoleNames: []string{"admin"}})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
