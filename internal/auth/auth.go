package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/farxc/listagem-empenhos/internal/logger"
	"github.com/farxc/listagem-empenhos/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")
)

// UserRepo is the slice of the storage layer the service needs, kept small
// so tests can supply an in-memory double.
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (*store.User, error)
	Insert(ctx context.Context, user *store.User) error
}

type Service struct {
	users     UserRepo
	appLogger *logger.Logger
}

func NewService(users UserRepo, appLogger *logger.Logger) *Service {
	return &Service{users: users, appLogger: appLogger}
}

// HashPassword returns the hex SHA-256 of the UTF-8 plaintext. The stored
// credential base predates this service and carries unsalted hashes, so the
// scheme is kept for compatibility with the records already in place.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Verify checks a username/password pair and returns the matching user.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *Service) Verify(ctx context.Context, username, password string) (*store.User, error) {
	const component = "Auth"

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("verifying credentials: %w", err)
	}

	if user.PasswordHash != HashPassword(password) {
		s.appLogger.Warn(component, "Failed login attempt: username=%s", username)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Register creates a new user with the given role and department.
func (s *Service) Register(ctx context.Context, username, password, role, department string) error {
	const component = "Auth"

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("checking existing user: %w", err)
	}

	user := &store.User{
		Username:     username,
		PasswordHash: HashPassword(password),
		Role:         role,
		Department:   department,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return fmt.Errorf("registering user: %w", err)
	}

	s.appLogger.Info(component, "User registered: username=%s role=%s department=%s", username, role, department)
	return nil
}
