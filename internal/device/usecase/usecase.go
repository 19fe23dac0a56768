package usecase

import (
	"context"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"keyrelay/config"
	"keyrelay/internal/device"
	models "keyrelay/internal/device/model"
	"keyrelay/internal/device/repository"
	"keyrelay/internal/identity"
	"keyrelay/internal/metrics"
	"keyrelay/pkg/errors"
	"keyrelay/pkg/logger"
)

const (
	identityKeySize = 32
	preKeySize      = 32
	signatureSize   = 64

	// Bounds carried over from the original registration contract.
	maxKeyID          = 999999
	maxRegistrationID = 999999

	maxAddressLength = 100
)

type DeviceUsecase struct {
	repo         device.DeviceRepository
	identityRepo identity.IdentityRepository
	logger       logger.Logger
	config       config.Config
}

func NewDeviceUsecase(repo device.DeviceRepository, identityRepo identity.IdentityRepository, logger logger.Logger, config config.Config) *DeviceUsecase {
	return &DeviceUsecase{repo: repo, identityRepo: identityRepo, logger: logger, config: config}
}

func (uc *DeviceUsecase) Register(ctx context.Context, identityID uuid.UUID, cmd device.RegisterDeviceCommand) (*device.DeviceDTO, error) {
	if cmd.Address == "" || len(cmd.Address) > maxAddressLength {
		return nil, errors.ErrInvalidAddress
	}
	if cmd.RegistrationID > maxRegistrationID {
		return nil, errors.ErrInvalidRegistration
	}
	if len(cmd.IdentityKey) != identityKeySize {
		return nil, errors.ErrInvalidIdentityKey
	}
	if err := validateSignedPreKey(cmd.SignedPreKey); err != nil {
		return nil, err
	}
	otpks, err := validateOneTimePreKeys(cmd.OneTimePreKeys, uc.config.Server.PreKeyLimit)
	if err != nil {
		return nil, err
	}

	dev := &models.Device{
		IdentityID:     identityID,
		Address:        cmd.Address,
		RegistrationID: cmd.RegistrationID,
		IdentityKey:    cmd.IdentityKey,
	}
	spk := &models.SignedPreKey{
		KeyID:     cmd.SignedPreKey.KeyID,
		PublicKey: cmd.SignedPreKey.PublicKey,
		Signature: cmd.SignedPreKey.Signature,
	}

	err = uc.repo.RegisterDeviceWithKeys(ctx, dev, spk, otpks, uc.config.Server.DeviceLimit)
	if err != nil {
		switch {
		case pkgerrors.Is(err, repository.ErrDeviceLimitReached):
			return nil, errors.ErrDeviceLimitReached
		case pkgerrors.Is(err, repository.ErrDeviceExists):
			return nil, errors.ErrDeviceExists
		}
		uc.logger.Error("error while registering device", "err", err)
		return nil, errors.ErrRegistrationFailed(errors.Internal("database error"))
	}

	metrics.DevicesRegistered.Inc()
	metrics.PreKeysUploaded.Add(float64(len(otpks)))

	return &device.DeviceDTO{
		ID:             dev.ID,
		Address:        dev.Address,
		RegistrationID: dev.RegistrationID,
		IdentityKey:    dev.IdentityKey,
		Created:        dev.CreatedAt,
	}, nil
}

func (uc *DeviceUsecase) Deregister(ctx context.Context, identityID uuid.UUID, registrationID uint32) error {
	dev, err := uc.repo.GetDevice(ctx, identityID, registrationID)
	if err != nil {
		if pkgerrors.Is(err, repository.ErrDeviceNotFound) {
			return errors.ErrNoDevice
		}
		uc.logger.Error("error resolving device for deregistration", "err", err)
		return errors.Internal("internal server error")
	}

	if err := uc.repo.DeleteDeviceCascade(ctx, dev.ID); err != nil {
		if pkgerrors.Is(err, repository.ErrDeviceNotFound) {
			return errors.ErrNoDevice
		}
		uc.logger.Error("error deleting device", "err", err, "device_id", dev.ID)
		return errors.Internal("internal server error")
	}

	metrics.DevicesDeregistered.Inc()
	return nil
}

func (uc *DeviceUsecase) ResolveDevice(ctx context.Context, identityID uuid.UUID, registrationID uint32) (*device.DeviceDTO, error) {
	dev, err := uc.resolveOwnDevice(ctx, identityID, registrationID)
	if err != nil {
		return nil, err
	}
	return &device.DeviceDTO{
		ID:             dev.ID,
		Address:        dev.Address,
		RegistrationID: dev.RegistrationID,
		IdentityKey:    dev.IdentityKey,
		Created:        dev.CreatedAt,
	}, nil
}

func (uc *DeviceUsecase) UploadOneTimePreKeys(ctx context.Context, identityID uuid.UUID, registrationID uint32, keys []device.OneTimePreKeyUpload) error {
	dev, err := uc.resolveOwnDevice(ctx, identityID, registrationID)
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		return errors.InvalidArg("at least one prekey is required")
	}
	otpks, err := validateOneTimePreKeys(keys, uc.config.Server.PreKeyLimit)
	if err != nil {
		return err
	}

	err = uc.repo.UploadOneTimePreKeys(ctx, dev.ID, otpks, uc.config.Server.PreKeyLimit)
	if err != nil {
		switch {
		case pkgerrors.Is(err, repository.ErrPreKeyLimitReached):
			return errors.ErrPreKeyLimitReached
		case pkgerrors.Is(err, repository.ErrDuplicateKeyID):
			return errors.ErrDuplicatePreKeyID
		case pkgerrors.Is(err, repository.ErrDeviceNotFound):
			return errors.ErrNoDevice
		}
		uc.logger.Error("error uploading prekeys", "err", err, "device_id", dev.ID)
		return errors.Internal("internal server error")
	}

	metrics.PreKeysUploaded.Add(float64(len(otpks)))
	return nil
}

func (uc *DeviceUsecase) RotateSignedPreKey(ctx context.Context, identityID uuid.UUID, registrationID uint32, spk device.SignedPreKeyUpload) error {
	dev, err := uc.resolveOwnDevice(ctx, identityID, registrationID)
	if err != nil {
		return err
	}

	if err := validateSignedPreKey(spk); err != nil {
		return err
	}

	err = uc.repo.ReplaceSignedPreKey(ctx, &models.SignedPreKey{
		DeviceID:  dev.ID,
		KeyID:     spk.KeyID,
		PublicKey: spk.PublicKey,
		Signature: spk.Signature,
	})
	if err != nil {
		uc.logger.Error("error rotating signed prekey", "err", err, "device_id", dev.ID)
		return errors.Internal("internal server error")
	}

	return nil
}

func (uc *DeviceUsecase) RemainingPreKeyCount(ctx context.Context, identityID uuid.UUID, registrationID uint32) (int, error) {
	dev, err := uc.resolveOwnDevice(ctx, identityID, registrationID)
	if err != nil {
		return 0, err
	}

	count, err := uc.repo.CountOneTimePreKeys(ctx, dev.ID)
	if err != nil {
		uc.logger.Error("error counting prekeys", "err", err, "device_id", dev.ID)
		return 0, errors.Internal("internal server error")
	}
	return count, nil
}

func (uc *DeviceUsecase) FetchBundles(ctx context.Context, identityID uuid.UUID, ownRegistrationID uint32, targetUsername string) ([]device.PreKeyBundleDTO, error) {
	// A stale caller must not receive bundles bound to a device identity it
	// no longer holds.
	if _, err := uc.resolveOwnDevice(ctx, identityID, ownRegistrationID); err != nil {
		return nil, err
	}

	target, err := uc.identityRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, errors.ErrNoRecipient
	}

	devices, err := uc.repo.ListDevices(ctx, target.ID)
	if err != nil {
		uc.logger.Error("error listing target devices", "err", err, "target", targetUsername)
		return nil, errors.Internal("internal server error")
	}
	if len(devices) == 0 {
		return nil, errors.ErrNoRecipientDevice
	}

	// All-or-nothing precheck: a partially exhausted user never returns a
	// mixed bundle set. The consume below stays the source of truth for the
	// race this cannot close.
	for i := range devices {
		count, err := uc.repo.CountOneTimePreKeys(ctx, devices[i].ID)
		if err != nil {
			uc.logger.Error("error counting prekeys for bundle", "err", err, "device_id", devices[i].ID)
			return nil, errors.Internal("internal server error")
		}
		if count == 0 {
			metrics.PreKeyExhaustions.Inc()
			return nil, errors.ErrNoPreKeysAvailable
		}
	}

	bundles := make([]device.PreKeyBundleDTO, 0, len(devices))
	for i := range devices {
		bundle, err := uc.repo.FetchPreKeyBundle(ctx, &devices[i])
		if err != nil {
			if pkgerrors.Is(err, repository.ErrNoPreKeysAvailable) {
				metrics.PreKeyExhaustions.Inc()
				return nil, errors.ErrNoPreKeysAvailable
			}
			uc.logger.Error("error fetching prekey bundle", "err", err, "device_id", devices[i].ID)
			return nil, errors.ErrPreKeyBundleFailed(err)
		}

		metrics.PreKeysConsumed.Inc()
		bundles = append(bundles, device.PreKeyBundleDTO{
			DeviceID:              bundle.DeviceID,
			Address:               bundle.Address,
			RegistrationID:        bundle.RegistrationID,
			IdentityKey:           bundle.IdentityKey,
			SignedPreKeyID:        bundle.SignedPreKeyID,
			SignedPreKey:          bundle.SignedPreKey,
			SignedPreKeySignature: bundle.SignedPreKeySignature,
			OneTimePreKeyID:       bundle.OneTimePreKeyID,
			OneTimePreKey:         bundle.OneTimePreKey,
		})
	}

	metrics.BundlesServed.Inc()
	return bundles, nil
}

// resolveOwnDevice distinguishes a caller that never registered from a
// caller whose device was silently replaced: a registration id that matches
// no device while the identity still holds devices means the id is stale.
func (uc *DeviceUsecase) resolveOwnDevice(ctx context.Context, identityID uuid.UUID, registrationID uint32) (*models.Device, error) {
	dev, err := uc.repo.GetDevice(ctx, identityID, registrationID)
	if err == nil {
		return dev, nil
	}
	if !pkgerrors.Is(err, repository.ErrDeviceNotFound) {
		uc.logger.Error("error resolving device", "err", err)
		return nil, errors.Internal("internal server error")
	}

	count, err := uc.repo.CountDevices(ctx, identityID)
	if err != nil {
		uc.logger.Error("error counting devices", "err", err)
		return nil, errors.Internal("internal server error")
	}
	if count == 0 {
		return nil, errors.ErrNoDevice
	}
	return nil, errors.ErrDeviceChanged
}

func validateSignedPreKey(spk device.SignedPreKeyUpload) error {
	if spk.KeyID > maxKeyID {
		return errors.ErrInvalidKeyID
	}
	if len(spk.PublicKey) != preKeySize {
		return errors.ErrInvalidSignedPreKey
	}
	if len(spk.Signature) != signatureSize {
		return errors.ErrInvalidSignature
	}
	return nil
}

func validateOneTimePreKeys(keys []device.OneTimePreKeyUpload, limit int) ([]models.OneTimePreKey, error) {
	if len(keys) > limit {
		return nil, errors.ErrPreKeyLimitReached
	}

	otpks := make([]models.OneTimePreKey, 0, len(keys))
	seenKeyIDs := make(map[uint32]bool)
	for _, k := range keys {
		if k.KeyID > maxKeyID {
			return nil, errors.ErrInvalidKeyID
		}
		if seenKeyIDs[k.KeyID] {
			return nil, errors.ErrDuplicatePreKeyID
		}
		seenKeyIDs[k.KeyID] = true

		if len(k.PublicKey) != preKeySize {
			return nil, errors.ErrInvalidOneTimePreKey
		}
		otpks = append(otpks, models.OneTimePreKey{
			KeyID:     k.KeyID,
			PublicKey: k.PublicKey,
		})
	}
	return otpks, nil
}
