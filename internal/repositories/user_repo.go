package repositories

import (
	"storemanager/internal/models"
)

// UserRepository defines the store adapter for API accounts. Lookups return
// (nil, nil) when no user matches.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
