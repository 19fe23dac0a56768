package device

import (
	"time"

	"github.com/google/uuid"
)

// NOTE: commands travel from handler to usecase
// NOTE: DTOs travel from usecase to handler

type RegisterDeviceCommand struct {
	Address        string
	RegistrationID uint32
	IdentityKey    []byte // 32 bytes Curve25519
	SignedPreKey   SignedPreKeyUpload
	OneTimePreKeys []OneTimePreKeyUpload
}

type SignedPreKeyUpload struct {
	KeyID     uint32
	PublicKey []byte
	Signature []byte // produced by the client's identity key, opaque here
}

type OneTimePreKeyUpload struct {
	KeyID     uint32
	PublicKey []byte
}

type DeviceDTO struct {
	ID             uuid.UUID
	Address        string
	RegistrationID uint32
	IdentityKey    []byte
	Created        time.Time
}

type PreKeyBundleDTO struct {
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
