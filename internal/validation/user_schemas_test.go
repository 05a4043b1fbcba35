package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskhub/internal/apperr"
)

func TestParseUserCreate(t *testing.T) {
	tests := []struct {
		name    string
		input   UserCreate
		wantErr bool
	}{
		{
			name:  "valid payload",
			input: UserCreate{Email: "Test@Example.COM", Name: " Test User ", PasswordHash: "hash"},
		},
		{
			name:    "malformed email",
			input:   UserCreate{Email: "not-an-email", Name: "Test User", PasswordHash: "hash"},
			wantErr: true,
		},
		{
			name:    "missing password hash",
			input:   UserCreate{Email: "test@example.com", Name: "Test User"},
			wantErr: true,
		},
		{
			name:    "name over 100 characters",
			input:   UserCreate{Email: "test@example.com", Name: strings.Repeat("x", 101), PasswordHash: "hash"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ParseUserCreate(tt.input)

			if tt.wantErr {
				assert.True(t, apperr.IsKind(err, apperr.KindValidation))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "test@example.com", out.Email)
				assert.Equal(t, "Test User", out.Name)
			}
		})
	}
}

func TestParseUserProfileUpdate(t *testing.T) {
	t.Run("all fields absent", func(t *testing.T) {
		_, err := ParseUserProfileUpdate(UserProfileUpdate{})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("empty avatar clears the field", func(t *testing.T) {
		out, err := ParseUserProfileUpdate(UserProfileUpdate{Avatar: strP("")})
		assert.NoError(t, err)
		if assert.NotNil(t, out.Avatar) {
			assert.Equal(t, "", *out.Avatar)
		}
	})

	t.Run("whitespace-only website trims to a clear", func(t *testing.T) {
		out, err := ParseUserProfileUpdate(UserProfileUpdate{Website: strP("   ")})
		assert.NoError(t, err)
		if assert.NotNil(t, out.Website) {
			assert.Equal(t, "", *out.Website)
		}
	})

	t.Run("non-URL avatar rejected", func(t *testing.T) {
		_, err := ParseUserProfileUpdate(UserProfileUpdate{Avatar: strP("not a url")})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("valid website", func(t *testing.T) {
		out, err := ParseUserProfileUpdate(UserProfileUpdate{Website: strP("https://example.com")})
		assert.NoError(t, err)
		assert.Equal(t, "https://example.com", *out.Website)
	})
}

func TestParseUserAvatarUpdate(t *testing.T) {
	t.Run("valid URL", func(t *testing.T) {
		out, err := ParseUserAvatarUpdate(UserAvatarUpdate{Avatar: strP("https://cdn.example.com/a.png")})
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/a.png", *out.Avatar)
	})

	t.Run("empty string clears the avatar", func(t *testing.T) {
		out, err := ParseUserAvatarUpdate(UserAvatarUpdate{Avatar: strP("")})
		assert.NoError(t, err)
		if assert.NotNil(t, out.Avatar) {
			assert.Equal(t, "", *out.Avatar)
		}
	})

	t.Run("schemeless value rejected", func(t *testing.T) {
		_, err := ParseUserAvatarUpdate(UserAvatarUpdate{Avatar: strP("cdn.example.com/a.png")})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestParseUserWebsiteUpdate(t *testing.T) {
	t.Run("empty string clears the website", func(t *testing.T) {
		out, err := ParseUserWebsiteUpdate(UserWebsiteUpdate{Website: strP("")})
		assert.NoError(t, err)
		if assert.NotNil(t, out.Website) {
			assert.Equal(t, "", *out.Website)
		}
	})

	t.Run("non-URL rejected", func(t *testing.T) {
		_, err := ParseUserWebsiteUpdate(UserWebsiteUpdate{Website: strP("not a url")})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestParseUserRolesUpdate(t *testing.T) {
	t.Run("trims and de-duplicates", func(t *testing.T) {
		out, err := ParseUserRolesUpdate(UserRolesUpdate{
			RoleNames: []string{" admin ", "user", "admin"},
		})
		assert.NoError(t, err)
		assert.Equal(t, []string{"admin", "user"}, out.RoleNames)
	})

	t.Run("empty set rejected", func(t *testing.T) {
		_, err := ParseUserRolesUpdate(UserRolesUpdate{})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}
