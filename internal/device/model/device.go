package models

import (
	"time"

	"github.com/google/uuid"

	identity "keyrelay/internal/identity/model"
)

// Device is one registered client installation under an identity. All key
// material hangs off the device and is removed with it.
type Device struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	IdentityID uuid.UUID          `bun:",notnull,type:uuid,unique:devices_identity_address_key"`
	Identity   *identity.Identity `bun:"rel:belongs-to,join:identity_id=id"`

	// Address is the routing label, unique within the identity's namespace.
	Address string `bun:",notnull,unique:devices_identity_address_key"`

	// RegistrationID is the client-chosen optimistic version token. A
	// reinstall registers a new id; stale callers are detected by comparing
	// against it.
	RegistrationID uint32 `bun:",notnull"`

	// Curve25519 public identity key, opaque to the server (32 bytes)
	IdentityKey []byte `bun:",notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
