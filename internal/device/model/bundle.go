package models

import "github.com/google/uuid"

// PreKeyBundle is everything a sender needs to start an asynchronous session
// with one device. Assembling it consumes one one-time prekey.
type PreKeyBundle struct {
	DeviceID       uuid.UUID
	Address        string
	RegistrationID uint32
	IdentityKey    []byte

	SignedPreKeyID        uint32
	SignedPreKey          []byte
	SignedPreKeySignature []byte

	OneTimePreKeyID uint32
	OneTimePreKey   []byte
}
