package device

import (
	"context"

	"github.com/google/uuid"

	models "keyrelay/internal/device/model"
)

type DeviceRepository interface {
	// RegisterDeviceWithKeys creates the device plus its initial signed
	// prekey and one-time prekeys in one transaction. The device-count and
	// address-uniqueness checks run inside the same transaction under an
	// identity-row lock, so concurrent registrations cannot jointly exceed
	// deviceLimit.
	RegisterDeviceWithKeys(ctx context.Context, dev *models.Device, spk *models.SignedPreKey, otpks []models.OneTimePreKey, deviceLimit int) error

	GetDevice(ctx context.Context, identityID uuid.UUID, registrationID uint32) (*models.Device, error)
	GetDeviceByAddress(ctx context.Context, identityID uuid.UUID, address string) (*models.Device, error)
	ListDevices(ctx context.Context, identityID uuid.UUID) ([]models.Device, error)
	CountDevices(ctx context.Context, identityID uuid.UUID) (int, error)

	// DeleteDeviceCascade removes the device together with its signed
	// prekey, its one-time prekeys and every message it sent or received,
	// in one transaction.
	DeleteDeviceCascade(ctx context.Context, deviceID uuid.UUID) error

	// UploadOneTimePreKeys appends keys under a device-row lock; the
	// post-insert count may never exceed limit and key ids already stored
	// for the device are rejected.
	UploadOneTimePreKeys(ctx context.Context, deviceID uuid.UUID, keys []models.OneTimePreKey, limit int) error

	// ReplaceSignedPreKey deletes the current signed prekey and inserts the
	// new one as a single atomic replace.
	ReplaceSignedPreKey(ctx context.Context, spk *models.SignedPreKey) error
	GetSignedPreKey(ctx context.Context, deviceID uuid.UUID) (*models.SignedPreKey, error)

	// ConsumeOneTimePreKey atomically removes and returns one unconsumed
	// key. The same key is never returned to two callers.
	ConsumeOneTimePreKey(ctx context.Context, deviceID uuid.UUID) (*models.OneTimePreKey, error)
	CountOneTimePreKeys(ctx context.Context, deviceID uuid.UUID) (int, error)

	// FetchPreKeyBundle composes identity key, signed prekey and one
	// consumed one-time prekey for the device in one transaction.
	FetchPreKeyBundle(ctx context.Context, dev *models.Device) (*models.PreKeyBundle, error)
}
