package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles recognized by the authorization middleware.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Avatar       string             `bson:"avatar" json:"avatar"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate enforces the account schema rules.
func (u *User) Validate() error {
	v := &ValidationError{}
	if u.Name == "" {
		v.Add("name", "Name is required")
	} else if utf8.RuneCountInString(u.Name) > maxNameLen {
		v.Add("name", "Name cannot be more than 100 characters")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		v.Add("email", "Valid email is required")
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		v.Add("role", "Role must be user or admin")
	}
	return v.OrNil()
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
