package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/meetsplit/internal/models"
)

// Password length limits, in bytes.
const (
	MinPasswordLength = 5
	MaxPasswordLength = 24
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidPassword    = fmt.Errorf("password must be %d to %d characters", MinPasswordLength, MaxPasswordLength)
	ErrEmailExists        = errors.New("email already registered")
	ErrAccountInactive    = errors.New("account is not activated")
)

// UserStorage is the part of the store the authenticator needs.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordAuthenticator implements Authenticator with bcrypt password hashes.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// NewPasswordAuthenticator creates a password authenticator using bcrypt's
// default cost.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: storage, cost: bcrypt.DefaultCost}
}

// WithCost returns a copy using the given bcrypt cost. Tests use
// bcrypt.MinCost to keep hashing fast.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: a.storage, cost: cost}
}

// HashCredential checks the password length and returns its bcrypt hash.
func (a *PasswordAuthenticator) HashCredential(credential string) (string, error) {
	if len(credential) < MinPasswordLength || len(credential) > MaxPasswordLength {
		return "", ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a new account with status new.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, name, lastname, credential string) (*models.User, error) {
	hash, err := a.HashCredential(credential)
	if err != nil {
		return nil, err
	}

	existing, err := a.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	user := models.NewUser(email, name, hash)
	user.Lastname = lastname
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate checks the password against the stored hash. Unknown emails
// and wrong passwords both yield ErrInvalidCredentials.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, ErrAccountInactive
	}

	return user, nil
}
