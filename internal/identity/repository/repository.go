package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	models "keyrelay/internal/identity/model"
	"keyrelay/pkg/logger"
)

var ErrIdentityNotFound = errors.New("identity not found")

type IdentityRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewIdentityRepository(db *bun.DB, logger logger.Logger) *IdentityRepository {
	return &IdentityRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *IdentityRepository) Create(ctx context.Context, identity *models.Identity) error {
	_, err := r.db.NewInsert().Model(identity).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "identityRepo.Create.Insert")
	}
	return nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Identity, error) {
	identity := new(models.Identity)
	err := r.db.NewSelect().Model(identity).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, "identityRepo.GetByID.Scan")
	}
	return identity, nil
}

func (r *IdentityRepository) GetByUsername(ctx context.Context, username string) (*models.Identity, error) {
	identity := new(models.Identity)
	err := r.db.NewSelect().Model(identity).Where("username = ?", username).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, "identityRepo.GetByUsername.Scan")
	}
	return identity, nil
}

func (r *IdentityRepository) GetOrCreateByUsername(ctx context.Context, username string) (*models.Identity, error) {
	identity := &models.Identity{Username: username}
	_, err := r.db.NewInsert().
		Model(identity).
		On("CONFLICT (username) DO UPDATE").
		Set("username = EXCLUDED.username").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "identityRepo.GetOrCreateByUsername.Insert")
	}
	return identity, nil
}
