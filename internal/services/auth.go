package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/messagely/messagely/internal/logger"
	"github.com/messagely/messagely/internal/models"
	"github.com/messagely/messagely/internal/repositories"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, hashedPassword, firstName, lastName, phone string) (*models.UserDB, error)
	TouchLogin(ctx context.Context, username string) (time.Time, error)
}

// TokenIssuer defines an interface for issuing session tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, username string, isAdmin bool) (string, error)
}

// TokenRevoker defines an interface for revoking session tokens by id.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthService handles registration, login and logout.
type AuthService struct {
	reader     UserReader
	writer     UserWriter
	tokens     TokenIssuer
	revoker    TokenRevoker
	bcryptCost int
}

// NewAuthService creates a new AuthService instance. A cost outside the
// bcrypt range falls back to bcrypt.DefaultCost.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer, revoker TokenRevoker, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		reader:     reader,
		writer:     writer,
		tokens:     tokens,
		revoker:    revoker,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user and logs them in. Every field is required.
// Returns the created profile and a session token.
func (svc *AuthService) Register(ctx context.Context, username, password, firstName, lastName, phone string) (*models.UserProfile, string, error) {
	if username == "" || password == "" || firstName == "" || lastName == "" || phone == "" {
		return nil, "", ErrMissingFields
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), svc.bcryptCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, "", err
	}

	user, err := svc.writer.Save(ctx, username, string(hashedPassword), firstName, lastName, phone)
	if err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			logger.Log.Infow("username already taken", "username", username)
			return nil, "", ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, "", err
	}

	// Registration counts as a login.
	if lastLogin, err := svc.writer.TouchLogin(ctx, username); err == nil {
		user.LastLoginAt = &lastLogin
	} else {
		logger.Log.Errorw("failed to update login timestamp", "username", username, "err", err)
	}

	token, err := svc.tokens.Generate(ctx, user.Username, user.IsAdmin)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return nil, "", err
	}

	profile := user.Profile()
	return &profile, token, nil
}

// Login verifies credentials and returns a session token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingFields
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Infow("login for unknown username", "username", username)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	if _, err := svc.writer.TouchLogin(ctx, username); err != nil {
		logger.Log.Errorw("failed to update login timestamp", "username", username, "err", err)
	}

	return svc.tokens.Generate(ctx, user.Username, user.IsAdmin)
}

// Logout revokes the current token until its natural expiry.
func (svc *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return svc.revoker.Revoke(ctx, tokenID, time.Until(expiresAt))
}
