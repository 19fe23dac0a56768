package device

import (
	"context"

	"github.com/google/uuid"
)

type DeviceUsecase interface {
	// Register creates a device with its initial key material. All-or-nothing.
	Register(ctx context.Context, identityID uuid.UUID, cmd RegisterDeviceCommand) (*DeviceDTO, error)

	// Deregister removes the device and cascades to its prekeys, signed
	// prekey and all messages it sent or received.
	Deregister(ctx context.Context, identityID uuid.UUID, registrationID uint32) error

	// ResolveDevice finds the caller's device by registration id,
	// distinguishing "never registered" from "registered but replaced".
	ResolveDevice(ctx context.Context, identityID uuid.UUID, registrationID uint32) (*DeviceDTO, error)

	UploadOneTimePreKeys(ctx context.Context, identityID uuid.UUID, registrationID uint32, keys []OneTimePreKeyUpload) error
	RotateSignedPreKey(ctx context.Context, identityID uuid.UUID, registrationID uint32, spk SignedPreKeyUpload) error
	RemainingPreKeyCount(ctx context.Context, identityID uuid.UUID, registrationID uint32) (int, error)

	// FetchBundles consumes one one-time prekey per device of the target
	// user and returns one bundle per device. Not idempotent: a retry
	// consumes fresh keys.
	FetchBundles(ctx context.Context, identityID uuid.UUID, ownRegistrationID uint32, targetUsername string) ([]PreKeyBundleDTO, error)
}
