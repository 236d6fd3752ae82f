package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/meetsplit/internal/models"
)

// memUsers is an in-memory UserStorage.
type memUsers struct {
	byEmail map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: make(map[string]*models.User)}
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return errors.New("duplicate email")
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func TestPasswordAuthenticator(t *testing.T) {
	users := newMemUsers()
	a := NewPasswordAuthenticator(users).WithCost(bcrypt.MinCost)
	ctx := context.Background()

	user, err := a.Register(ctx, "alice@example.com", "Alice", "Smith", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusNew, user.Status)
	assert.Equal(t, "Smith", user.Lastname)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "alice@example.com", "Other", "", "secret2")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("inactive account", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice@example.com", "secret1")
		assert.ErrorIs(t, err, ErrAccountInactive)
	})

	user.Status = models.UserStatusActive

	t.Run("valid credentials", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "nobody@example.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestHashCredentialLength(t *testing.T) {
	a := NewPasswordAuthenticator(newMemUsers()).WithCost(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "1234", true},
		{"shortest", "12345", false},
		{"longest", strings.Repeat("x", MaxPasswordLength), false},
		{"too long", strings.Repeat("x", MaxPasswordLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := a.HashCredential(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPassword)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(tt.password)))
		})
	}
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	user := &models.User{ID: "u1", Email: "alice@example.com"}

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())
	assert.Equal(t, "alice@example.com", claims.Email)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTManager("other-secret", time.Minute).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTManager("test-secret", time.Minute)
		later.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		_, err := later.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, Subject: "u1"},
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Validate(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
