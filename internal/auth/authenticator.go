// Package auth authenticates users and issues their access tokens.
package auth

import (
	"context"

	"github.com/mmynk/meetsplit/internal/models"
)

// Authenticator verifies user credentials.
// The service layer depends on this interface only, so the password scheme
// can be replaced without touching the RPC handlers.
type Authenticator interface {
	// Register creates a not yet activated account.
	Register(ctx context.Context, email, name, lastname, credential string) (*models.User, error)

	// Authenticate returns the user if the credential matches.
	// An account that has not been activated yields ErrAccountInactive.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// HashCredential validates and hashes a new credential for storage.
	HashCredential(credential string) (string, error)
}
