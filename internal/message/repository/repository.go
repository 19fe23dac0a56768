package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	models "keyrelay/internal/message/model"
	"keyrelay/pkg/logger"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotMessageOwner = errors.New("message not owned by device")
)

type MessageRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewMessageRepository(db *bun.DB, logger logger.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	_, err := r.db.NewInsert().Model(msg).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.Create.Insert")
	}
	return nil
}

func (r *MessageRepository) ListForRecipient(ctx context.Context, deviceID uuid.UUID) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.NewSelect().
		Model(&msgs).
		Where("recipient_device_id = ?", deviceID).
		Order("created_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.ListForRecipient.Scan")
	}
	return msgs, nil
}

func (r *MessageRepository) DeleteOwned(ctx context.Context, recipientDeviceID uuid.UUID, messageIDs []int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {

		// Precheck-then-commit: the batch is verified in full before the
		// first row is removed.
		var msgs []models.Message
		err := tx.NewSelect().
			Model(&msgs).
			Where("id IN (?)", bun.In(messageIDs)).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			return errors.Wrap(err, "messageRepo.DeleteOwned.select")
		}

		found := make(map[int64]*models.Message, len(msgs))
		for i := range msgs {
			found[msgs[i].ID] = &msgs[i]
		}
		for _, id := range messageIDs {
			msg, ok := found[id]
			if !ok {
				return ErrMessageNotFound
			}
			if msg.RecipientDeviceID != recipientDeviceID {
				return ErrNotMessageOwner
			}
		}

		if _, err := tx.NewDelete().
			Model((*models.Message)(nil)).
			Where("id IN (?)", bun.In(messageIDs)).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "messageRepo.DeleteOwned.delete")
		}

		return nil
	})
}
