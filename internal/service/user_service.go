package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"taskhub/internal/apperr"
	"taskhub/internal/cache"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/validation"
)

const userCacheTTL = 5 * time.Minute

// UpdateUserRequest carries the fields a caller wants to change. A nil field
// is absent and the corresponding dedicated mutation is not invoked.
type UpdateUserRequest struct {
	Name      *string  `json:"name"`
	Email     *string  `json:"email"`
	Bio       *string  `json:"bio"`
	Avatar    *string  `json:"avatar"`
	Website   *string  `json:"website"`
	IsActive  *bool    `json:"is_active"`
	RoleNames []string `json:"role_names"`
}

// UserService exposes user domain operations.
type UserService interface {
	CreateUser(ctx context.Context, email, name, passwordHash string, op repository.Operator) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context, filter repository.UserFilter, opts repository.ListOptions) ([]model.User, error)
	CountUsers(ctx context.Context, filter repository.UserFilter) (int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest, op repository.Operator) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id string) string {
	return cache.Key("user", id)
}

// CreateUser enforces the email-uniqueness business rule with an explicit
// pre-check before delegating to the repository.
func (s *userService) CreateUser(ctx context.Context, email, name, passwordHash string, op repository.Operator) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	return s.repo.Create(ctx, validation.UserCreate{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}, op)
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, filter repository.UserFilter, opts repository.ListOptions) ([]model.User, error) {
	return s.repo.FindAll(ctx, filter, opts)
}

func (s *userService) CountUsers(ctx context.Context, filter repository.UserFilter) (int64, error) {
	return s.repo.Count(ctx, filter)
}

// UpdateUser fans out to whichever dedicated repository mutations correspond
// to the fields present in the request. Fields absent from the request are
// never touched.
func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest, op repository.Operator) (*model.User, error) {
	result, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apperr.NotFound("user not found")
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != result.Email {
			existing, err := s.repo.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, apperr.Conflict("email already registered")
			}
			result, err = s.repo.UpdateEmail(ctx, id, validation.UserEmailUpdate{Email: email}, op)
			if err != nil {
				return nil, err
			}
		}
	}

	if req.Name != nil {
		result, err = s.repo.UpdateName(ctx, id, validation.UserNameUpdate{Name: *req.Name}, op)
		if err != nil {
			return nil, err
		}
	}

	if req.Bio != nil {
		result, err = s.repo.UpdateBio(ctx, id, validation.UserBioUpdate{Bio: req.Bio}, op)
		if err != nil {
			return nil, err
		}
	}

	if req.Avatar != nil {
		result, err = s.repo.UpdateAvatar(ctx, id, validation.UserAvatarUpdate{Avatar: req.Avatar}, op)
		if err != nil {
			return nil, err
		}
	}

	if req.Website != nil {
		result, err = s.repo.UpdateWebsite(ctx, id, validation.UserWebsiteUpdate{Website: req.Website}, op)
		if err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		result, err = s.repo.UpdateStatus(ctx, id, validation.UserStatusUpdate{IsActive: *req.IsActive}, op)
		if err != nil {
			return nil, err
		}
	}

	if req.RoleNames != nil {
		if err := s.repo.UpdateRoles(ctx, id, validation.UserRolesUpdate{RoleNames: req.RoleNames}, op); err != nil {
			return nil, err
		}
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return result, nil
}
