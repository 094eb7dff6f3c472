package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"telatour/database/repository"
	userRepo "telatour/database/repository/user"
	"telatour/models"
	"telatour/utils"
)

// ErrInvalidCredentials is returned when the email or password does not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

const sessionTTL = 24 * time.Hour

type DefaultUserService struct {
	Repo     userRepo.UserRepository
	JWT      *utils.JWTManager
	Sessions *utils.SessionStore
	Logger   *zap.Logger
}

func NewDefaultUserService(repo userRepo.UserRepository, jwt *utils.JWTManager, sessions *utils.SessionStore, logger *zap.Logger) *DefaultUserService {
	return &DefaultUserService{Repo: repo, JWT: jwt, Sessions: sessions, Logger: logger}
}

func (s *DefaultUserService) Register(name, email, password string) (*models.User, error) {
	user := &models.User{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
		Role:  models.RoleUser,
	}
	verr := &models.ValidationError{}
	if password == "" {
		verr.Add("password", "Password is required")
	} else if len(password) < 6 {
		verr.Add("password", "Password must be at least 6 characters")
	}
	if err := user.Validate(); err != nil {
		var uv *models.ValidationError
		if errors.As(err, &uv) {
			for _, fe := range uv.Fields {
				verr.Add(fe.Field, fe.Message)
			}
		} else {
			return nil, err
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.IsActive = true

	if err := s.Repo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			verr := &models.ValidationError{}
			verr.Add("email", "Email is already registered")
			return nil, verr
		}
		return nil, err
	}
	s.Logger.Info("user registered", zap.String("userID", user.ID.Hex()))
	return user, nil
}

func (s *DefaultUserService) Authenticate(email, password string) (*AuthResult, error) {
	user, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.JWT.GenerateToken(user.ID.Hex(), user.Email, user.Role, sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	session := utils.AuthSession{
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Sessions.Save(utils.HashToken(token), session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	s.Logger.Info("user authenticated", zap.String("userID", user.ID.Hex()))
	return &AuthResult{User: user, Token: token}, nil
}

func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return s.Repo.GetByID(oid)
}

func (s *DefaultUserService) Revoke(token string) error {
	return s.Sessions.Delete(utils.HashToken(token))
}
