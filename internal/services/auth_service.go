package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopapi/internal/models"
	"shopapi/internal/repositories"
	"shopapi/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the raw registration form.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// LoginInput is the raw login form.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithPasswordCost overrides the bcrypt cost.
func WithPasswordCost(cost int) AuthOption {
	return func(s *AuthService) { s.passwordCost = cost }
}

// AuthService handles registration, login and logout.
type AuthService struct {
	users        repositories.UserRepository
	tokens       *TokenIssuer
	validator    *validation.Validator
	events       EventPublisher
	log          *zap.Logger
	passwordCost int
	// dummyHash is compared against on unknown emails so both login
	// failure paths spend the same bcrypt time.
	dummyHash []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users repositories.UserRepository,
	tokens *TokenIssuer,
	validator *validation.Validator,
	events EventPublisher,
	log *zap.Logger,
	opts ...AuthOption,
) (*AuthService, error) {
	s := &AuthService{
		users:        users,
		tokens:       tokens,
		validator:    validator,
		events:       events,
		log:          log,
		passwordCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.events == nil {
		s.events = NopPublisher{}
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.passwordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}
	s.dummyHash = dummy
	return s, nil
}

// Register validates the form, creates the user and issues their first token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normaliseEmail(in.Email)
	input := validation.Input{
		"name":                  in.Name,
		"email":                 email,
		"password":              in.Password,
		"password_confirmation": in.PasswordConfirmation,
	}
	if err := s.validator.Validate(ctx, input, registerRules(s.users.ExistsByEmail)); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.passwordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, validation.NewError("email", "The email has already been taken.")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	raw, _, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventUserRegistered, user.ID)
	s.log.Info("user registered", zap.String("user_id", user.ID))
	return &AuthResult{User: user, AccessToken: raw}, nil
}

// Login checks the credentials and issues a new token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := normaliseEmail(in.Email)
	input := validation.Input{"email": email, "password": in.Password}
	if err := s.validator.Validate(ctx, input, loginRules()); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	raw, _, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("user logged in", zap.String("user_id", user.ID))
	return &AuthResult{User: user, AccessToken: raw}, nil
}

// Logout revokes exactly the token the principal authenticated with.
func (s *AuthService) Logout(ctx context.Context, principal *Principal) error {
	if principal == nil || principal.Token == nil || principal.User == nil {
		return ErrUnauthenticated
	}
	if err := s.tokens.Revoke(ctx, principal.Token.ID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.log.Info("user logged out", zap.String("user_id", principal.User.ID), zap.String("token_id", principal.Token.ID))
	return nil
}

// Authenticate resolves a raw bearer token to its principal.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*Principal, error) {
	return s.tokens.Resolve(ctx, raw)
}

func (s *AuthService) publish(ctx context.Context, eventType, id string) {
	event := Event{Type: eventType, ID: id, OccurredAt: time.Now().UTC()}
	if err := s.events.Publish(ctx, eventType, event); err != nil {
		s.log.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

// normaliseEmail makes addresses compare case-insensitively; they are stored lower-cased.
func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
