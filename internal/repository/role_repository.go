package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskhub/internal/apperr"
	"taskhub/internal/db"
	"taskhub/internal/logger"
	"taskhub/internal/model"
	"taskhub/internal/validation"
)

// UsersWithRolesFilter selects users by role membership. With HasAllRoles
// set, a user must hold every named role; otherwise any one suffices.
type UsersWithRolesFilter struct {
	RoleNames   []string
	HasAllRoles bool
}

// RoleRepository covers role CRUD plus the set-oriented user↔role
// operations of the normalized schema.
type RoleRepository interface {
	Create(ctx context.Context, input validation.RoleCreate, op Operator) (*model.Role, error)
	// FindByID returns nil (not an error) when the role is absent.
	FindByID(ctx context.Context, id string) (*model.Role, error)
	// FindByName returns nil (not an error) when no role has the name.
	FindByName(ctx context.Context, name string) (*model.Role, error)
	FindAll(ctx context.Context) ([]model.Role, error)
	UpdateDescription(ctx context.Context, id string, input validation.RoleDescriptionUpdate, op Operator) (*model.Role, error)
	Delete(ctx context.Context, id string, op Operator) error
	// AssignRoleToUser is idempotent: an existing association is not an error.
	AssignRoleToUser(ctx context.Context, userID, roleID string, op Operator) error
	RemoveRoleFromUser(ctx context.Context, userID, roleID string, op Operator) error
	// SetUserRoles replaces the user's full role set by role name,
	// transactionally where the engine supports it.
	SetUserRoles(ctx context.Context, userID string, input validation.UserRolesUpdate, op Operator) error
	GetUserRoleNames(ctx context.Context, userID string) ([]string, error)
	UserHasRole(ctx context.Context, userID, roleName string) (bool, error)
	UserHasAnyRole(ctx context.Context, userID string, roleNames ...string) (bool, error)
	UserHasAllRoles(ctx context.Context, userID string, roleNames ...string) (bool, error)
	GetUsersWithRoles(ctx context.Context, filter UsersWithRolesFilter) ([]model.User, error)
}

type roleRepository struct {
	adapter *db.Adapter
	log     *zap.Logger
}

// NewRoleRepository builds the canonical relational role repository.
func NewRoleRepository(adapter *db.Adapter) RoleRepository {
	return &roleRepository{adapter: adapter, log: logger.Named("role_repository")}
}

func (r *roleRepository) Create(ctx context.Context, input validation.RoleCreate, op Operator) (*model.Role, error) {
	input, err := validation.ParseRoleCreate(input)
	if err != nil {
		return nil, err
	}

	role := &model.Role{
		ID:          r.adapter.NewID(),
		Name:        input.Name,
		Description: input.Description,
	}
	if err := r.adapter.DB.WithContext(ctx).Create(role).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("role name already exists")
		}
		return nil, r.fail("role.create", role.ID, op, err)
	}

	recordAudit(ctx, r.adapter.DB, r.log, "role", role.ID, "create", op.resolve(r.log, "role.create"))
	return role, nil
}

func (r *roleRepository) FindByID(ctx context.Context, id string) (*model.Role, error) {
	var role model.Role
	err := r.adapter.DB.WithContext(ctx).Where("id = ?", id).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("role.find_by_id", id, Operator{}, err)
	}
	return &role, nil
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.adapter.DB.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("role.find_by_name", "", Operator{}, err)
	}
	return &role, nil
}

func (r *roleRepository) FindAll(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := r.adapter.DB.WithContext(ctx).Order("name ASC").Find(&roles).Error; err != nil {
		return nil, r.fail("role.find_all", "", Operator{}, err)
	}
	return roles, nil
}

func (r *roleRepository) UpdateDescription(ctx context.Context, id string, input validation.RoleDescriptionUpdate, op Operator) (*model.Role, error) {
	input, err := validation.ParseRoleDescriptionUpdate(input)
	if err != nil {
		return nil, err
	}

	res := r.adapter.DB.WithContext(ctx).
		Model(&model.Role{}).
		Where("id = ?", id).
		Update("description", input.Description)
	if res.Error != nil {
		return nil, r.fail("role.update_description", id, op, res.Error)
	}
	if res.RowsAffected == 0 {
		if existing, err := r.FindByID(ctx, id); err != nil || existing == nil {
			return nil, apperr.NotFound("role not found")
		}
	}

	recordAudit(ctx, r.adapter.DB, r.log, "role", id, "update_description", op.resolve(r.log, "role.update_description"))

	role, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperr.NotFound("role not found")
	}
	return role, nil
}

func (r *roleRepository) Delete(ctx context.Context, id string, op Operator) error {
	res := r.adapter.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Role{})
	if res.Error != nil {
		return r.fail("role.delete", id, op, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("role not found")
	}

	recordAudit(ctx, r.adapter.DB, r.log, "role", id, "delete", op.resolve(r.log, "role.delete"))
	return nil
}

func (r *roleRepository) AssignRoleToUser(ctx context.Context, userID, roleID string, op Operator) error {
	assoc := model.UserRole{UserID: userID, RoleID: roleID}
	err := r.adapter.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assoc).Error
	if err != nil {
		return r.fail("role.assign_to_user", roleID, op, err)
	}

	recordAudit(ctx, r.adapter.DB, r.log, "user_role", userID, "assign_role", op.resolve(r.log, "role.assign_to_user"))
	return nil
}

func (r *roleRepository) RemoveRoleFromUser(ctx context.Context, userID, roleID string, op Operator) error {
	err := r.adapter.DB.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&model.UserRole{}).Error
	if err != nil {
		return r.fail("role.remove_from_user", roleID, op, err)
	}

	recordAudit(ctx, r.adapter.DB, r.log, "user_role", userID, "remove_role", op.resolve(r.log, "role.remove_from_user"))
	return nil
}

func (r *roleRepository) SetUserRoles(ctx context.Context, userID string, input validation.UserRolesUpdate, op Operator) error {
	input, err := validation.ParseUserRolesUpdate(input)
	if err != nil {
		return err
	}

	var roles []model.Role
	err = r.adapter.DB.WithContext(ctx).Where("name IN ?", input.RoleNames).Find(&roles).Error
	if err != nil {
		return r.fail("role.set_user_roles", "", op, err)
	}
	if len(roles) != len(input.RoleNames) {
		return apperr.NotFound("one or more roles not found")
	}

	replace := func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		assocs := make([]model.UserRole, 0, len(roles))
		for _, role := range roles {
			assocs = append(assocs, model.UserRole{UserID: userID, RoleID: role.ID})
		}
		return tx.Create(&assocs).Error
	}

	if r.adapter.SupportsTransactions {
		err = r.adapter.DB.WithContext(ctx).Transaction(replace)
	} else {
		err = replace(r.adapter.DB.WithContext(ctx))
	}
	if err != nil {
		return r.fail("role.set_user_roles", "", op, err)
	}

	recordAudit(ctx, r.adapter.DB, r.log, "user_role", userID, "set_roles", op.resolve(r.log, "role.set_user_roles"))
	return nil
}

func (r *roleRepository) GetUserRoleNames(ctx context.Context, userID string) ([]string, error) {
	var names []string
	err := r.adapter.DB.WithContext(ctx).
		Model(&model.UserRole{}).
		Select("roles.name").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, r.fail("role.get_user_role_names", "", Operator{ID: userID}, err)
	}
	return names, nil
}

func (r *roleRepository) UserHasRole(ctx context.Context, userID, roleName string) (bool, error) {
	return r.UserHasAnyRole(ctx, userID, roleName)
}

// UserHasAnyRole counts membership rows over a join.
func (r *roleRepository) UserHasAnyRole(ctx context.Context, userID string, roleNames ...string) (bool, error) {
	if len(roleNames) == 0 {
		return false, nil
	}

	var count int64
	err := r.adapter.DB.WithContext(ctx).
		Model(&model.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ? AND roles.name IN ?", userID, roleNames).
		Count(&count).Error
	if err != nil {
		return false, r.fail("role.user_has_any_role", "", Operator{ID: userID}, err)
	}
	return count > 0, nil
}

// UserHasAllRoles requires the distinct matched role count to equal the
// requested count exactly.
func (r *roleRepository) UserHasAllRoles(ctx context.Context, userID string, roleNames ...string) (bool, error) {
	if len(roleNames) == 0 {
		return false, nil
	}

	var count int64
	err := r.adapter.DB.WithContext(ctx).
		Model(&model.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ? AND roles.name IN ?", userID, roleNames).
		Distinct("roles.name").
		Count(&count).Error
	if err != nil {
		return false, r.fail("role.user_has_all_roles", "", Operator{ID: userID}, err)
	}
	return count == int64(len(roleNames)), nil
}

func (r *roleRepository) GetUsersWithRoles(ctx context.Context, filter UsersWithRolesFilter) ([]model.User, error) {
	if len(filter.RoleNames) == 0 {
		return []model.User{}, nil
	}

	membership := r.adapter.DB.WithContext(ctx).
		Model(&model.UserRole{}).
		Select("user_roles.user_id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name IN ?", filter.RoleNames)
	if filter.HasAllRoles {
		membership = membership.
			Group("user_roles.user_id").
			Having("COUNT(DISTINCT roles.name) = ?", len(filter.RoleNames))
	}

	var users []model.User
	err := r.adapter.DB.WithContext(ctx).
		Where("id IN (?)", membership).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, r.fail("role.get_users_with_roles", "", Operator{}, err)
	}
	return users, nil
}

func (r *roleRepository) fail(operation, id string, op Operator, err error) error {
	r.log.Error("role repository failure",
		logger.Operation(operation),
		zap.String("role_id", id),
		logger.Actor(op.ID),
		logger.Err(err))
	return apperr.Persistence(operation, err)
}
