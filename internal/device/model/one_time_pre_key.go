package models

import (
	"time"

	"github.com/google/uuid"
)

// OneTimePreKey is consumed the moment it is handed out in a bundle: the row
// is deleted, never returned twice.
type OneTimePreKey struct {
	ID int64 `bun:",pk,autoincrement"`

	DeviceID uuid.UUID `bun:",notnull,type:uuid,unique:one_time_pre_keys_device_key_id_key"`
	Device   *Device   `bun:"rel:belongs-to,join:device_id=id"`

	KeyID     uint32 `bun:",notnull,unique:one_time_pre_keys_device_key_id_key"`
	PublicKey []byte `bun:",notnull"` // 32 bytes Curve25519

	UploadedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
