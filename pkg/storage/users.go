package storage

import (
	"context"

	"github.com/skillswap/skill-exchange/pkg/models"
)

// UserStore defines the interface for managing user accounts and balances.
// Balances are never mutated through this interface; every balance change
// rides inside a session or bid transition.
type UserStore interface {
	// GetUser retrieves a user by wallet address.
	GetUser(ctx context.Context, walletAddress string) (*models.User, error)

	// CreateUser creates a new user account.
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)

	// DeleteUser deletes a user account.
	DeleteUser(ctx context.Context, walletAddress string) error

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]models.User, error)
}
