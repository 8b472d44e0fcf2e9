package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/scope"
	"gestock/internal/core/tx"
	"gestock/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts  int
	LockDuration      time.Duration
	PasswordMinLength int
}

// DefaultServiceConfig returns the default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:  5,
		LockDuration:      15 * time.Minute,
		PasswordMinLength: 8,
	}
}

// Service provides authentication logic.
type Service struct {
	repo       Repository
	txManager  tx.Manager
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(repo Repository, txManager tx.Manager, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		repo:       repo,
		txManager:  txManager,
		jwtService: jwtService,
		config:     config,
	}
}

// LoginResult is the issued token with its user.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// Login verifies credentials and issues an access token. Failed attempts
// count toward a temporary lock; the generic unauthorized message never
// reveals whether the username exists.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		if updateErr := s.repo.Update(ctx, user); updateErr != nil {
			logger.Error(ctx, "record failed login", "error", updateErr, "user_id", user.ID.String())
		}
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	user.RecordSuccessfulLogin()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID.String(), "username", user.Username)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// CreateUserInput is the user creation payload.
type CreateUserInput struct {
	Username string
	Email    *string
	Password string

	// StoreID binds the user to one store; nil creates a global user
	StoreID *id.ID
}

// CreateUser registers a user. Only global callers manage users.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !sc.IsGlobal() {
		return nil, apperror.NewForbidden("only global users manage accounts")
	}

	if in.Username == "" {
		return nil, apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	if len(in.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	exists, err := s.repo.Exists(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "username", in.Username)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(in.Username, string(passwordHash), in.StoreID)
	user.Email = in.Email
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user created", "user_id", user.ID.String(), "username", user.Username)
	return user, nil
}

// ChangePassword sets a new password after verifying the current one.
// Users change their own password; global users may reset anyone's.
func (s *Service) ChangePassword(ctx context.Context, userID id.ID, current, next string) error {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if sc.UserID != user.ID {
		if !sc.IsGlobal() {
			return apperror.NewForbidden("cannot change another user's password")
		}
	} else if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperror.NewUnauthorized("invalid credentials")
	}

	if len(next) < s.config.PasswordMinLength {
		return apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(passwordHash)
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// GetByID returns a user. Store-bound callers only see users of their
// own store.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !sc.IsGlobal() && sc.UserID != user.ID {
		if user.StoreID == nil || !sc.CanAccess(*user.StoreID) {
			return nil, apperror.NewNotFound("user", userID)
		}
	}
	return user, nil
}

// List returns users visible to the caller.
func (s *Service) List(ctx context.Context, filter UserFilter) ([]User, error) {
	sc, err := scope.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if storeID, bound := sc.StoreID(); bound {
		filter.StoreID = &storeID
	}
	return s.repo.List(ctx, filter)
}
