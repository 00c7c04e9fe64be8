package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"wishlist/internal/apperror"
	"wishlist/internal/models"
	"wishlist/internal/repositories"
	"wishlist/internal/security"
)

const (
	invalidCredentials = "Invalid email or password"
	invalidToken       = "Could not validate credentials"
)

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AuthService handles registration, login and bearer token resolution.
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   *security.PasswordHasher
	tokens   *security.TokenService

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, hasher *security.PasswordHasher, tokens *security.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a user after checking password strength. A taken email
// is reported by the store's unique index as a ConflictError.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if problems := security.ValidateStrength(password); len(problems) > 0 {
		return nil, apperror.Validation("Password validation failed", map[string]any{"errors": problems})
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: strings.TrimSpace(email), HashedPassword: hashed}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credential pair and issues a session token. Unknown
// emails and wrong passwords are indistinguishable to the caller, in
// response and in timing.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.hasher.Verify(password, s.dummy())
		return nil, apperror.Authentication(invalidCredentials)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, apperror.Authentication(invalidCredentials)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
	}, nil
}

// Authenticate resolves a bearer token to its user. Any token problem, and
// a subject that no longer exists, is an AuthenticationError.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	email, ok := s.tokens.DecodeSubject(token)
	if !ok {
		return nil, apperror.Authentication(invalidToken)
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Authentication(invalidToken)
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and everything they own.
func (s *AuthService) DeleteAccount(ctx context.Context, user *models.User) error {
	return s.userRepo.Delete(ctx, user.ID)
}

// dummy returns a hash to verify against when the email is unknown.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("wishlist-timing-equaliser-0")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
