package identity

import (
	"context"

	"taskhub/internal/model"
)

// Account is the identity-provider view of a user. Credential material never
// crosses this boundary.
type Account struct {
	ID    string
	Email string
	Name  string
}

// Provider is the external authentication collaborator. Account creation and
// credential validation belong to it, not to this codebase.
type Provider interface {
	CreateAccount(ctx context.Context, email, name string) (*Account, error)
	FindAccountByID(ctx context.Context, id string) (*Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*Account, error)
}

// toUser projects a provider account onto the domain entity.
func toUser(a *Account) *model.User {
	if a == nil {
		return nil
	}
	return &model.User{
		ID:       a.ID,
		Email:    a.Email,
		Name:     a.Name,
		IsActive: true,
	}
}
