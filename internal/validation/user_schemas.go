package validation

import (
	"strings"

	"taskhub/internal/apperr"
)

// UserCreate is the payload for repository-level user creation. Variants
// backed by an external identity provider reject it outright.
type UserCreate struct {
	Email        string `json:"email" validate:"required,email,max=255"`
	Name         string `json:"name" validate:"required,min=1,max=100"`
	PasswordHash string `json:"-" validate:"required"`
}

// ParseUserCreate normalizes and validates a user create payload.
func ParseUserCreate(in UserCreate) (UserCreate, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	return parse(in)
}

// UserBasicInfoUpdate narrows a mutation to name and bio.
type UserBasicInfoUpdate struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=100"`
	Bio  *string `json:"bio" validate:"omitnil,max=500"`
}

// ParseUserBasicInfoUpdate validates a basic-info update. At least one field
// must be present.
func ParseUserBasicInfoUpdate(in UserBasicInfoUpdate) (UserBasicInfoUpdate, error) {
	if in.Name == nil && in.Bio == nil {
		return UserBasicInfoUpdate{}, apperr.Validation("invalid input", map[string]string{
			"basic_info": "at least one of name or bio is required",
		})
	}
	in.Name = trimPtr(in.Name)
	in.Bio = trimPtr(in.Bio)
	return parse(in)
}

// UserEmailUpdate narrows a mutation to the email alone.
type UserEmailUpdate struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// ParseUserEmailUpdate normalizes and validates an email update.
func ParseUserEmailUpdate(in UserEmailUpdate) (UserEmailUpdate, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return parse(in)
}

// UserStatusUpdate narrows a mutation to the active flag.
type UserStatusUpdate struct {
	IsActive bool `json:"is_active"`
}

// ParseUserStatusUpdate validates a status update.
func ParseUserStatusUpdate(in UserStatusUpdate) (UserStatusUpdate, error) {
	return parse(in)
}

// UserProfileUpdate narrows a mutation to the public profile fields. An
// empty string clears the corresponding field.
type UserProfileUpdate struct {
	Bio     *string `json:"bio" validate:"omitnil,max=500"`
	Avatar  *string `json:"avatar" validate:"omitnil,urlifset,max=2048"`
	Website *string `json:"website" validate:"omitnil,urlifset,max=2048"`
}

// ParseUserProfileUpdate validates a profile update. At least one field must
// be present.
func ParseUserProfileUpdate(in UserProfileUpdate) (UserProfileUpdate, error) {
	if in.Bio == nil && in.Avatar == nil && in.Website == nil {
		return UserProfileUpdate{}, apperr.Validation("invalid input", map[string]string{
			"profile": "at least one of bio, avatar or website is required",
		})
	}
	in.Bio = trimPtr(in.Bio)
	in.Avatar = trimPtr(in.Avatar)
	in.Website = trimPtr(in.Website)
	return parse(in)
}

// UserNameUpdate narrows a mutation to the name alone.
type UserNameUpdate struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// ParseUserNameUpdate trims and validates a name update.
func ParseUserNameUpdate(in UserNameUpdate) (UserNameUpdate, error) {
	in.Name = strings.TrimSpace(in.Name)
	return parse(in)
}

// UserBioUpdate narrows a mutation to the bio alone. A nil bio clears it.
type UserBioUpdate struct {
	Bio *string `json:"bio" validate:"omitnil,max=500"`
}

// ParseUserBioUpdate trims and validates a bio update.
func ParseUserBioUpdate(in UserBioUpdate) (UserBioUpdate, error) {
	in.Bio = trimPtr(in.Bio)
	return parse(in)
}

// UserAvatarUpdate narrows a mutation to the avatar URL alone.
type UserAvatarUpdate struct {
	Avatar *string `json:"avatar" validate:"omitnil,urlifset,max=2048"`
}

// ParseUserAvatarUpdate trims and validates an avatar update.
func ParseUserAvatarUpdate(in UserAvatarUpdate) (UserAvatarUpdate, error) {
	in.Avatar = trimPtr(in.Avatar)
	return parse(in)
}

// UserWebsiteUpdate narrows a mutation to the website URL alone.
type UserWebsiteUpdate struct {
	Website *string `json:"website" validate:"omitnil,urlifset,max=2048"`
}

// ParseUserWebsiteUpdate trims and validates a website update.
func ParseUserWebsiteUpdate(in UserWebsiteUpdate) (UserWebsiteUpdate, error) {
	in.Website = trimPtr(in.Website)
	return parse(in)
}

// UserRolesUpdate replaces a user's full role set by role name. Used by both
// UserRepository.UpdateRoles and RoleRepository.SetUserRoles.
type UserRolesUpdate struct {
	RoleNames []string `json:"role_names" validate:"required,min=1,dive,required,max=50"`
}

// ParseUserRolesUpdate trims, de-duplicates and validates a role-set update.
func ParseUserRolesUpdate(in UserRolesUpdate) (UserRolesUpdate, error) {
	seen := make(map[string]struct{}, len(in.RoleNames))
	names := make([]string, 0, len(in.RoleNames))
	for _, n := range in.RoleNames {
		n = strings.TrimSpace(n)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	in.RoleNames = names
	return parse(in)
}
