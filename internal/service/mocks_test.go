package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/validation"
)

// MockTodoRepository is a mock implementation of repository.TodoRepository.
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) Create(ctx context.Context, input validation.TodoCreate, op repository.Operator) (*model.Todo, error) {
	args := m.Called(ctx, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindByID(ctx context.Context, id, userID string) (*model.Todo, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindByUserID(ctx context.Context, userID string, opts repository.TodoListOptions) ([]model.Todo, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindByStatus(ctx context.Context, userID string, completed bool) ([]model.Todo, error) {
	args := m.Called(ctx, userID, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindAll(ctx context.Context, filter repository.TodoFilter) ([]model.Todo, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoRepository) CountByUserID(ctx context.Context, userID string, completed *bool) (int64, error) {
	args := m.Called(ctx, userID, completed)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTodoRepository) UpdateContent(ctx context.Context, id string, input validation.TodoContentUpdate, userID string, op repository.Operator) (*model.Todo, error) {
	args := m.Called(ctx, id, input, userID, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) UpdateStatus(ctx context.Context, id string, input validation.TodoStatusUpdate, userID string, op repository.Operator) (*model.Todo, error) {
	args := m.Called(ctx, id, input, userID, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) UpdateTitle(ctx context.Context, id string, input validation.TodoTitleUpdate, userID string, op repository.Operator) (*model.Todo, error) {
	args := m.Called(ctx, id, input, userID, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) UpdateDescription(ctx context.Context, id string, input validation.TodoDescriptionUpdate, userID string, op repository.Operator) (*model.Todo, error) {
	args := m.Called(ctx, id, input, userID, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) ToggleCompletion(ctx context.Context, id, userID string, op repository.Operator) (*model.Todo, error) {
	args := m.Called(ctx, id, userID, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoRepository) Delete(ctx context.Context, id, userID string, op repository.Operator) error {
	args := m.Called(ctx, id, userID, op)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, input validation.UserCreate, op repository.Operator) (*model.User, error) {
	args := m.Called(ctx, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter repository.UserFilter, opts repository.ListOptions) ([]model.User, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateBasicInfo(ctx context.Context, id string, input validation.UserBasicInfoUpdate, op repository.Operator) (*model.User, error) {
	args := m.Called(ctx, id, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateEmail(ctx context.Context, id string, input validation.UserEmailUpdate, op repository.Operator) (*model.User, error) {
	args := m.Called(ctx, id, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id string, input validation.UserStatusUpdate, op repository.Operator) (*model.User, error) {
	args := m.Called(ctx, id, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, input validation.UserProfileUpdate, op repository.Operator) (*model.User, error) {
	args := m.Called(ctx, id, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id string, input validation.UserNameUpdate, op repository.Operator) (*model.User, error) {
	args := m.Called(ctx, id, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateBio(ctx context.Context, id string, input validation.UserBioUpdate, op repository.Operator) (*model.User, error) {
	args := m.Called(ctx, id, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, id string, input validation.UserAvatarUpdate, op repository.Operator) (*model.User, error) {
	args := m.Called(ctx, id, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateWebsite(ctx context.Context, id string, input validation.UserWebsiteUpdate, op repository.Operator) (*model.User, error) {
	args := m.Called(ctx, id, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRoles(ctx context.Context, id string, input validation.UserRolesUpdate, op repository.Operator) error {
	args := m.Called(ctx, id, input, op)
	return args.Error(0)
}

// MockRoleRepository is a mock implementation of repository.RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Create(ctx context.Context, input validation.RoleCreate, op repository.Operator) (*model.Role, error) {
	args := m.Called(ctx, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id string) (*model.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) FindAll(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *MockRoleRepository) UpdateDescription(ctx context.Context, id string, input validation.RoleDescriptionUpdate, op repository.Operator) (*model.Role, error) {
	args := m.Called(ctx, id, input, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) Delete(ctx context.Context, id string, op repository.Operator) error {
	args := m.Called(ctx, id, op)
	return args.Error(0)
}

func (m *MockRoleRepository) AssignRoleToUser(ctx context.Context, userID, roleID string, op repository.Operator) error {
	args := m.Called(ctx, userID, roleID, op)
	return args.Error(0)
}

func (m *MockRoleRepository) RemoveRoleFromUser(ctx context.Context, userID, roleID string, op repository.Operator) error {
	args := m.Called(ctx, userID, roleID, op)
	return args.Error(0)
}

func (m *MockRoleRepository) SetUserRoles(ctx context.Context, userID string, input validation.UserRolesUpdate, op repository.Operator) error {
	args := m.Called(ctx, userID, input, op)
	return args.Error(0)
}

func (m *MockRoleRepository) GetUserRoleNames(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRoleRepository) UserHasRole(ctx context.Context, userID, roleName string) (bool, error) {
	args := m.Called(ctx, userID, roleName)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleRepository) UserHasAnyRole(ctx context.Context, userID string, roleNames ...string) (bool, error) {
	args := m.Called(ctx, userID, roleNames)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleRepository) UserHasAllRoles(ctx context.Context, userID string, roleNames ...string) (bool, error) {
	args := m.Called(ctx, userID, roleNames)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleRepository) GetUsersWithRoles(ctx context.Context, filter repository.UsersWithRolesFilter) ([]model.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
