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

// ListOptions controls paginated listing.
type ListOptions struct {
	Limit int
	Skip  int
	// Sort is "newest" (default) or "oldest".
	Sort string
}

// UserFilter narrows user listing. EmailContains is a substring match;
// RoleNames matches users holding any of the named roles via the join table.
type UserFilter struct {
	EmailContains string
	RoleNames     []string
}

// UserRepository is the storage-agnostic user contract. Same dedicated-
// mutation discipline as TodoRepository: no generic update exists.
type UserRepository interface {
	Create(ctx context.Context, input validation.UserCreate, op Operator) (*model.User, error)
	// FindByID returns nil (not an error) when the user is absent.
	FindByID(ctx context.Context, id string) (*model.User, error)
	// FindByEmail returns nil (not an error) when no user has the email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context, filter UserFilter, opts ListOptions) ([]model.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	UpdateBasicInfo(ctx context.Context, id string, input validation.UserBasicInfoUpdate, op Operator) (*model.User, error)
	UpdateEmail(ctx context.Context, id string, input validation.UserEmailUpdate, op Operator) (*model.User, error)
	UpdateStatus(ctx context.Context, id string, input validation.UserStatusUpdate, op Operator) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, input validation.UserProfileUpdate, op Operator) (*model.User, error)
	UpdateName(ctx context.Context, id string, input validation.UserNameUpdate, op Operator) (*model.User, error)
	UpdateBio(ctx context.Context, id string, input validation.UserBioUpdate, op Operator) (*model.User, error)
	UpdateAvatar(ctx context.Context, id string, input validation.UserAvatarUpdate, op Operator) (*model.User, error)
	UpdateWebsite(ctx context.Context, id string, input validation.UserWebsiteUpdate, op Operator) (*model.User, error)
	// UpdateRoles resolves role names to ids and replaces the user's full
	// role set. Replacement is transactional when the engine supports it.
	UpdateRoles(ctx context.Context, id string, input validation.UserRolesUpdate, op Operator) error
}

type userRepository struct {
	adapter *db.Adapter
	log     *zap.Logger
}

// NewUserRepository builds the canonical relational user repository.
func NewUserRepository(adapter *db.Adapter) UserRepository {
	return &userRepository{adapter: adapter, log: logger.Named("user_repository")}
}

func (r *userRepository) Create(ctx context.Context, input validation.UserCreate, op Operator) (*model.User, error) {
	input, err := validation.ParseUserCreate(input)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           r.adapter.NewID(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: input.PasswordHash,
		IsActive:     true,
	}
	if err := r.adapter.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, r.fail("user.create", user.ID, op, err)
	}

	recordAudit(ctx, r.adapter.DB, r.log, "user", user.ID, "create", op.resolve(r.log, "user.create"))
	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.adapter.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("user.find_by_id", id, Operator{}, err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.adapter.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("user.find_by_email", "", Operator{}, err)
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, filter UserFilter, opts ListOptions) ([]model.User, error) {
	q := r.applyFilter(ctx, r.adapter.DB.WithContext(ctx), filter)
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

	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, r.fail("user.find_all", "", Operator{}, err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	q := r.applyFilter(ctx, r.adapter.DB.WithContext(ctx).Model(&model.User{}), filter)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, r.fail("user.count", "", Operator{}, err)
	}
	return count, nil
}

// applyFilter narrows a user query. Role membership against the normalized
// schema needs a subquery over the join table, not a simple equality.
func (r *userRepository) applyFilter(ctx context.Context, q *gorm.DB, filter UserFilter) *gorm.DB {
	if filter.EmailContains != "" {
		q = q.Where("email LIKE ?", "%"+filter.EmailContains+"%")
	}
	if len(filter.RoleNames) > 0 {
		q = q.Where("id IN (?)", r.adapter.DB.WithContext(ctx).
			Model(&model.UserRole{}).
			Select("user_roles.user_id").
			Joins("JOIN roles ON roles.id = user_roles.role_id").
			Where("roles.name IN ?", filter.RoleNames))
	}
	return q
}

func (r *userRepository) UpdateBasicInfo(ctx context.Context, id string, input validation.UserBasicInfoUpdate, op Operator) (*model.User, error) {
	input, err := validation.ParseUserBasicInfoUpdate(input)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Bio != nil {
		fields["bio"] = *input.Bio
	}
	return r.updateFields(ctx, id, fields, "update_basic_info", op)
}

func (r *userRepository) UpdateEmail(ctx context.Context, id string, input validation.UserEmailUpdate, op Operator) (*model.User, error) {
	input, err := validation.ParseUserEmailUpdate(input)
	if err != nil {
		return nil, err
	}
	return r.updateFields(ctx, id, map[string]interface{}{"email": input.Email}, "update_email", op)
}

func (r *userRepository) UpdateStatus(ctx context.Context, id string, input validation.UserStatusUpdate, op Operator) (*model.User, error) {
	input, err := validation.ParseUserStatusUpdate(input)
	if err != nil {
		return nil, err
	}
	return r.updateFields(ctx, id, map[string]interface{}{"is_active": input.IsActive}, "update_status", op)
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, input validation.UserProfileUpdate, op Operator) (*model.User, error) {
	input, err := validation.ParseUserProfileUpdate(input)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Bio != nil {
		fields["bio"] = *input.Bio
	}
	if input.Avatar != nil {
		fields["avatar"] = *input.Avatar
	}
	if input.Website != nil {
		fields["website"] = *input.Website
	}
	return r.updateFields(ctx, id, fields, "update_profile", op)
}

func (r *userRepository) UpdateName(ctx context.Context, id string, input validation.UserNameUpdate, op Operator) (*model.User, error) {
	input, err := validation.ParseUserNameUpdate(input)
	if err != nil {
		return nil, err
	}
	return r.updateFields(ctx, id, map[string]interface{}{"name": input.Name}, "update_name", op)
}

func (r *userRepository) UpdateBio(ctx context.Context, id string, input validation.UserBioUpdate, op Operator) (*model.User, error) {
	input, err := validation.ParseUserBioUpdate(input)
	if err != nil {
		return nil, err
	}
	return r.updateFields(ctx, id, map[string]interface{}{"bio": input.Bio}, "update_bio", op)
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id string, input validation.UserAvatarUpdate, op Operator) (*model.User, error) {
	input, err := validation.ParseUserAvatarUpdate(input)
	if err != nil {
		return nil, err
	}
	return r.updateFields(ctx, id, map[string]interface{}{"avatar": input.Avatar}, "update_avatar", op)
}

func (r *userRepository) UpdateWebsite(ctx context.Context, id string, input validation.UserWebsiteUpdate, op Operator) (*model.User, error) {
	input, err := validation.ParseUserWebsiteUpdate(input)
	if err != nil {
		return nil, err
	}
	return r.updateFields(ctx, id, map[string]interface{}{"website": input.Website}, "update_website", op)
}

func (r *userRepository) UpdateRoles(ctx context.Context, id string, input validation.UserRolesUpdate, op Operator) error {
	input, err := validation.ParseUserRolesUpdate(input)
	if err != nil {
		return err
	}
	if err := r.ensureExists(ctx, id); err != nil {
		return err
	}

	var roles []model.Role
	err = r.adapter.DB.WithContext(ctx).Where("name IN ?", input.RoleNames).Find(&roles).Error
	if err != nil {
		return r.fail("user.update_roles", id, op, err)
	}
	if len(roles) != len(input.RoleNames) {
		return apperr.NotFound("one or more roles not found")
	}

	replace := func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		assocs := make([]model.UserRole, 0, len(roles))
		for _, role := range roles {
			assocs = append(assocs, model.UserRole{UserID: id, RoleID: role.ID})
		}
		return tx.Create(&assocs).Error
	}

	// Full replacement must be atomic where the engine allows it. Engines
	// without multi-statement transactions expose a brief empty-role window.
	if r.adapter.SupportsTransactions {
		err = r.adapter.DB.WithContext(ctx).Transaction(replace)
	} else {
		err = replace(r.adapter.DB.WithContext(ctx))
	}
	if err != nil {
		return r.fail("user.update_roles", id, op, err)
	}

	recordAudit(ctx, r.adapter.DB, r.log, "user", id, "update_roles", op.resolve(r.log, "user.update_roles"))
	return nil
}

// updateFields applies the already-validated field set of one dedicated
// mutation. Existence is checked first so a miss is a clean NotFound.
func (r *userRepository) updateFields(ctx context.Context, id string, fields map[string]interface{}, action string, op Operator) (*model.User, error) {
	operation := "user." + action

	if err := r.ensureExists(ctx, id); err != nil {
		return nil, err
	}

	err := r.adapter.DB.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, r.fail(operation, id, op, err)
	}

	recordAudit(ctx, r.adapter.DB, r.log, "user", id, action, op.resolve(r.log, operation))
	return r.reload(ctx, id, operation)
}

func (r *userRepository) ensureExists(ctx context.Context, id string) error {
	var count int64
	err := r.adapter.DB.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return r.fail("user.ensure_exists", id, Operator{}, err)
	}
	if count == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *userRepository) reload(ctx context.Context, id, operation string) (*model.User, error) {
	var user model.User
	err := r.adapter.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, r.fail(operation, id, Operator{}, err)
	}
	return &user, nil
}

func (r *userRepository) fail(operation, id string, op Operator, err error) error {
	r.log.Error("user repository failure",
		logger.Operation(operation),
		logger.UserID(id),
		logger.Actor(op.ID),
		logger.Err(err))
	return apperr.Persistence(operation, err)
}
