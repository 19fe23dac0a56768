package models

import (
	"time"

	"github.com/google/uuid"

	device "keyrelay/internal/device/model"
)

// Message is an opaque ciphertext envelope held until the recipient pulls and
// deletes it. Rows are immutable; delivery order is insertion order.
type Message struct {
	ID int64 `bun:",pk,autoincrement"`

	SenderDeviceID uuid.UUID      `bun:",notnull,type:uuid"`
	SenderDevice   *device.Device `bun:"rel:belongs-to,join:sender_device_id=id"`

	RecipientDeviceID uuid.UUID      `bun:",notnull,type:uuid"`
	RecipientDevice   *device.Device `bun:"rel:belongs-to,join:recipient_device_id=id"`

	Content []byte `bun:",notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
