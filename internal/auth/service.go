// Package auth implements the identity layer: registration, credential
// verification and signed bearer tokens carrying subject and role claims.
package auth

import (
	"fmt"
	"time"

	"civicgo/backend/internal/config"
	"civicgo/backend/internal/models"
	"civicgo/backend/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// Service handles registration, login and token verification.
type Service struct {
	Storage  storage.Storage
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates a new auth service. The secret must be known only to
// the server process; ttl bounds the lifetime of issued tokens.
func NewService(s storage.Storage, secret string, ttl time.Duration) *Service {
	return &Service{
		Storage:  s,
		secret:   []byte(secret),
		tokenTTL: ttl,
	}
}

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// Register creates a new user and returns it together with a fresh token.
// The email check is a case-sensitive exact match against the stored value.
func (s *Service) Register(req RegisterRequest) (*models.User, string, error) {
	existing, err := s.Storage.GetUserByEmail(req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("cannot check email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = config.RoleCitizen
	}

	user := &models.User{
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  string(hash),
		Role:      role,
		Name:      req.Name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.Storage.CreateUser(user); err != nil {
		return nil, "", fmt.Errorf("cannot save user: %w", err)
	}

	token, err := s.IssueToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password yield the same error.
func (s *Service) Login(email, password string) (*models.User, string, error) {
	user, err := s.Storage.GetUserByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("cannot look up user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Lookup resolves a user by id; (nil, nil) means the account does not exist.
func (s *Service) Lookup(id string) (*models.User, error) {
	return s.Storage.GetUserByID(id)
}
