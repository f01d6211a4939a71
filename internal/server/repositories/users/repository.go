package users

import (
	"context"

	"github.com/dmitrijs2005/userauth/internal/server/models"
)

// Repository is the credential store as seen by the services.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}
