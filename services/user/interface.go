package user

import "telatour/models"

// AuthResult is a successful login: the account plus its bearer token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService exposes account operations.
type UserService interface {
	// Register creates an account with the "user" role.
	Register(name, email, password string) (*models.User, error)
	// Authenticate verifies credentials and issues a session token.
	Authenticate(email, password string) (*AuthResult, error)
	// GetByID fetches an active account.
	GetByID(id string) (*models.User, error)
	// Revoke invalidates the given token's session.
	Revoke(token string) error
}
