package models

import (
	"time"

	"github.com/google/uuid"
)

// SignedPreKey is the single medium-lived prekey of a device. Rotation
// replaces the row wholesale inside one transaction.
type SignedPreKey struct {
	DeviceID uuid.UUID `bun:",pk,type:uuid"`
	Device   *Device   `bun:"rel:belongs-to,join:device_id=id"`

	KeyID     uint32 `bun:",notnull"`
	PublicKey []byte `bun:",notnull"` // 32 bytes Curve25519
	Signature []byte `bun:",notnull"` // 64 bytes, verified client-side

	UploadedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
