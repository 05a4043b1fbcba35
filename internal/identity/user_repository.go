package identity

import (
	"context"

	"go.uber.org/zap"

	"taskhub/internal/apperr"
	"taskhub/internal/logger"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/validation"
)

// ReadOnlyUserRepository adapts an external identity provider to the
// UserRepository contract for read access. Every mutation fails fast:
// identity and credentials are owned by the provider, and changes must flow
// through its own management surface.
type ReadOnlyUserRepository struct {
	provider Provider
	log      *zap.Logger
}

var _ repository.UserRepository = (*ReadOnlyUserRepository)(nil)

// NewReadOnlyUserRepository wraps a provider as a read-only user repository.
func NewReadOnlyUserRepository(provider Provider) *ReadOnlyUserRepository {
	return &ReadOnlyUserRepository{provider: provider, log: logger.Named("identity_user_repository")}
}

func (r *ReadOnlyUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	account, err := r.provider.FindAccountByID(ctx, id)
	if err != nil {
		return nil, r.providerErr("identity.find_by_id", err)
	}
	return toUser(account), nil
}

func (r *ReadOnlyUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	account, err := r.provider.FindAccountByEmail(ctx, email)
	if err != nil {
		return nil, r.providerErr("identity.find_by_email", err)
	}
	return toUser(account), nil
}

func (r *ReadOnlyUserRepository) FindAll(ctx context.Context, filter repository.UserFilter, opts repository.ListOptions) ([]model.User, error) {
	return nil, r.rejected("find_all")
}

func (r *ReadOnlyUserRepository) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	return 0, r.rejected("count")
}

func (r *ReadOnlyUserRepository) Create(ctx context.Context, input validation.UserCreate, op repository.Operator) (*model.User, error) {
	return nil, r.rejected("create")
}

func (r *ReadOnlyUserRepository) UpdateBasicInfo(ctx context.Context, id string, input validation.UserBasicInfoUpdate, op repository.Operator) (*model.User, error) {
	return nil, r.rejected("update_basic_info")
}

func (r *ReadOnlyUserRepository) UpdateEmail(ctx context.Context, id string, input validation.UserEmailUpdate, op repository.Operator) (*model.User, error) {
	return nil, r.rejected("update_email")
}

func (r *ReadOnlyUserRepository) UpdateStatus(ctx context.Context, id string, input validation.UserStatusUpdate, op repository.Operator) (*model.User, error) {
	return nil, r.rejected("update_status")
}

func (r *ReadOnlyUserRepository) UpdateProfile(ctx context.Context, id string, input validation.UserProfileUpdate, op repository.Operator) (*model.User, error) {
	return nil, r.rejected("update_profile")
}

func (r *ReadOnlyUserRepository) UpdateName(ctx context.Context, id string, input validation.UserNameUpdate, op repository.Operator) (*model.User, error) {
	return nil, r.rejected("update_name")
}

func (r *ReadOnlyUserRepository) UpdateBio(ctx context.Context, id string, input validation.UserBioUpdate, op repository.Operator) (*model.User, error) {
	return nil, r.rejected("update_bio")
}

func (r *ReadOnlyUserRepository) UpdateAvatar(ctx context.Context, id string, input validation.UserAvatarUpdate, op repository.Operator) (*model.User, error) {
	return nil, r.rejected("update_avatar")
}

func (r *ReadOnlyUserRepository) UpdateWebsite(ctx context.Context, id string, input validation.UserWebsiteUpdate, op repository.Operator) (*model.User, error) {
	return nil, r.rejected("update_website")
}

func (r *ReadOnlyUserRepository) UpdateRoles(ctx context.Context, id string, input validation.UserRolesUpdate, op repository.Operator) error {
	return r.rejected("update_roles")
}

func (r *ReadOnlyUserRepository) rejected(operation string) error {
	return apperr.BusinessRule("user " + operation + " is managed by the identity provider")
}

// providerErr hides provider detail from callers; it is only logged here.
func (r *ReadOnlyUserRepository) providerErr(operation string, err error) error {
	r.log.Error("identity provider failure",
		logger.Operation(operation),
		logger.Err(err))
	return apperr.Wrap(apperr.KindExternalService, "identity provider unavailable", err)
}
