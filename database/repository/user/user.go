package userRepo

import (
	"telatour/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new account. Fails with ErrDuplicate when the
	// email is already registered.
	Create(user *models.User) error
	// GetByID retrieves an active account by id.
	GetByID(id primitive.ObjectID) (*models.User, error)
	// GetByEmail retrieves an active account by email.
	GetByEmail(email string) (*models.User, error)
	// Replace overwrites the stored account record.
	Replace(user *models.User) error
	// SoftDelete flips isActive off.
	SoftDelete(id primitive.ObjectID) error
}
