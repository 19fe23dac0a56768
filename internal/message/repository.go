package message

import (
	"context"

	"github.com/google/uuid"

	models "keyrelay/internal/message/model"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error

	// ListForRecipient returns messages oldest-first; repeated calls with no
	// intervening writes return identical output.
	ListForRecipient(ctx context.Context, deviceID uuid.UUID) ([]models.Message, error)

	// DeleteOwned verifies every id exists and belongs to the recipient
	// device before deleting any of them. A rejected batch deletes nothing.
	DeleteOwned(ctx context.Context, recipientDeviceID uuid.UUID, messageIDs []int64) error
}
