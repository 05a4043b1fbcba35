package service

import (
	"context"

	"taskhub/internal/apperr"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/validation"
)

// RoleService exposes role management and membership queries.
type RoleService interface {
	CreateRole(ctx context.Context, name string, description *string, op repository.Operator) (*model.Role, error)
	ListRoles(ctx context.Context) ([]model.Role, error)
	UpdateRoleDescription(ctx context.Context, id string, description *string, op repository.Operator) (*model.Role, error)
	DeleteRole(ctx context.Context, id string, op repository.Operator) error
	AssignRole(ctx context.Context, userID, roleName string, op repository.Operator) error
	RemoveRole(ctx context.Context, userID, roleName string, op repository.Operator) error
	SetUserRoles(ctx context.Context, userID string, roleNames []string, op repository.Operator) error
	GetUserRoleNames(ctx context.Context, userID string) ([]string, error)
	UserHasRole(ctx context.Context, userID, roleName string) (bool, error)
	UsersWithRoles(ctx context.Context, roleNames []string, hasAllRoles bool) ([]model.User, error)
}

type roleService struct {
	roleRepo repository.RoleRepository
	userRepo repository.UserRepository
}

// NewRoleService builds a RoleService.
func NewRoleService(roleRepo repository.RoleRepository, userRepo repository.UserRepository) RoleService {
	return &roleService{roleRepo: roleRepo, userRepo: userRepo}
}

func (s *roleService) CreateRole(ctx context.Context, name string, description *string, op repository.Operator) (*model.Role, error) {
	existing, err := s.roleRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("role name already exists")
	}

	return s.roleRepo.Create(ctx, validation.RoleCreate{Name: name, Description: description}, op)
}

func (s *roleService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.roleRepo.FindAll(ctx)
}

func (s *roleService) UpdateRoleDescription(ctx context.Context, id string, description *string, op repository.Operator) (*model.Role, error) {
	return s.roleRepo.UpdateDescription(ctx, id, validation.RoleDescriptionUpdate{Description: description}, op)
}

func (s *roleService) DeleteRole(ctx context.Context, id string, op repository.Operator) error {
	return s.roleRepo.Delete(ctx, id, op)
}

func (s *roleService) AssignRole(ctx context.Context, userID, roleName string, op repository.Operator) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}

	role, err := s.roleRepo.FindByName(ctx, roleName)
	if err != nil {
		return err
	}
	if role == nil {
		return apperr.NotFound("role not found")
	}

	return s.roleRepo.AssignRoleToUser(ctx, userID, role.ID, op)
}

func (s *roleService) RemoveRole(ctx context.Context, userID, roleName string, op repository.Operator) error {
	role, err := s.roleRepo.FindByName(ctx, roleName)
	if err != nil {
		return err
	}
	if role == nil {
		return apperr.NotFound("role not found")
	}

	return s.roleRepo.RemoveRoleFromUser(ctx, userID, role.ID, op)
}

func (s *roleService) SetUserRoles(ctx context.Context, userID string, roleNames []string, op repository.Operator) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}

	return s.roleRepo.SetUserRoles(ctx, userID, validation.UserRolesUpdate{RoleNames: roleNames}, op)
}

func (s *roleService) GetUserRoleNames(ctx context.Context, userID string) ([]string, error) {
	return s.roleRepo.GetUserRoleNames(ctx, userID)
}

func (s *roleService) UserHasRole(ctx context.Context, userID, roleName string) (bool, error) {
	return s.roleRepo.UserHasRole(ctx, userID, roleName)
}

func (s *roleService) UsersWithRoles(ctx context.Context, roleNames []string, hasAllRoles bool) ([]model.User, error) {
	return s.roleRepo.GetUsersWithRoles(ctx, repository.UsersWithRolesFilter{
		RoleNames:   roleNames,
		HasAllRoles: hasAllRoles,
	})
}
