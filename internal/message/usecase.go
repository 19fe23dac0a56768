package message

import (
	"context"

	"github.com/google/uuid"
)

type MessageUsecase interface {
	// Submit relays a batch of encrypted messages. Items are processed
	// independently and a result is reported per item, so a client retry
	// can skip the items that already succeeded.
	Submit(ctx context.Context, identityID uuid.UUID, senderRegistrationID uint32, items []SubmitMessageItem) ([]SubmitResultDTO, error)

	// List returns the device's inbox oldest-first. Read-only.
	List(ctx context.Context, identityID uuid.UUID, registrationID uint32) ([]MessageDTO, error)

	// Delete removes the given messages, all-or-nothing, after verifying
	// the calling device is the recipient of every one of them.
	Delete(ctx context.Context, identityID uuid.UUID, registrationID uint32, messageIDs []int64) error
}
