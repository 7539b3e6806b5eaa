package ports

import (
	"context"

	"github.com/medimeet/booking-api/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// UserRepository resolves verified caller identities to user rows.
type UserRepository interface {
	// FindByExternalID looks a user up by the identity-provider subject id.
	FindByExternalID(ctx context.Context, externalID string) (*domain.User, error)
}
