package models

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated account principal. Accounts are created and
// authenticated by an external subsystem; this core only resolves them and
// hangs devices off them.
type Identity struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	// Username = unique @handle used as the routing name for bundles
	Username string `bun:",unique,notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
