package identity

import (
	"context"

	"github.com/google/uuid"

	models "keyrelay/internal/identity/model"
)

type IdentityRepository interface {
	Create(ctx context.Context, identity *models.Identity) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Identity, error)
	GetByUsername(ctx context.Context, username string) (*models.Identity, error)
	// GetOrCreateByUsername resolves the identity for an
	// externally-authenticated username, provisioning it on first sight.
	GetOrCreateByUsername(ctx context.Context, username string) (*models.Identity, error)
}
