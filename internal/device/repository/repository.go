package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	models "keyrelay/internal/device/model"
	identityModels "keyrelay/internal/identity/model"
	messageModels "keyrelay/internal/message/model"
	"keyrelay/pkg/logger"
)

var (
	ErrDeviceNotFound       = errors.New("device not found")
	ErrDeviceExists         = errors.New("device already exists for address")
	ErrDeviceLimitReached   = errors.New("device limit reached")
	ErrPreKeyLimitReached   = errors.New("prekey limit reached")
	ErrDuplicateKeyID       = errors.New("duplicate one-time prekey id")
	ErrNoPreKeysAvailable   = errors.New("no one-time prekeys available")
	ErrSignedPreKeyNotFound = errors.New("signed prekey not found")
)

type DeviceRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewDeviceRepository(db *bun.DB, logger logger.Logger) *DeviceRepository {
	return &DeviceRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *DeviceRepository) RegisterDeviceWithKeys(
	ctx context.Context,
	dev *models.Device,
	spk *models.SignedPreKey,
	otpks []models.OneTimePreKey,
	deviceLimit int,
) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {

		// Lock the owning identity row so concurrent registrations for the
		// same identity serialize on the device-count check.
		ident := new(identityModels.Identity)
		err := tx.NewSelect().
			Model(ident).
			Where("id = ?", dev.IdentityID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			return errors.Wrap(err, "deviceRepo.Register.lockIdentity")
		}

		count, err := tx.NewSelect().
			Model((*models.Device)(nil)).
			Where("identity_id = ?", dev.IdentityID).
			Count(ctx)
		if err != nil {
			return errors.Wrap(err, "deviceRepo.Register.countDevices")
		}
		if count >= deviceLimit {
			return ErrDeviceLimitReached
		}

		exists, err := tx.NewSelect().
			Model((*models.Device)(nil)).
			Where("identity_id = ? AND address = ?", dev.IdentityID, dev.Address).
			Exists(ctx)
		if err != nil {
			return errors.Wrap(err, "deviceRepo.Register.checkAddress")
		}
		if exists {
			return ErrDeviceExists
		}

		if _, err := tx.NewInsert().Model(dev).Returning("*").Exec(ctx); err != nil {
			return errors.Wrap(err, "deviceRepo.Register.insertDevice")
		}

		spk.DeviceID = dev.ID
		if _, err := tx.NewInsert().Model(spk).Exec(ctx); err != nil {
			return errors.Wrap(err, "deviceRepo.Register.insertSignedPreKey")
		}

		if len(otpks) > 0 {
			for i := range otpks {
				otpks[i].DeviceID = dev.ID
			}
			if _, err := tx.NewInsert().Model(&otpks).Exec(ctx); err != nil {
				return errors.Wrap(err, "deviceRepo.Register.insertOneTimePreKeys")
			}
		}

		return nil
	})
}

func (r *DeviceRepository) GetDevice(ctx context.Context, identityID uuid.UUID, registrationID uint32) (*models.Device, error) {
	dev := new(models.Device)
	err := r.db.NewSelect().
		Model(dev).
		Where("identity_id = ? AND registration_id = ?", identityID, registrationID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, errors.Wrap(err, "deviceRepo.GetDevice.Scan")
	}
	return dev, nil
}

func (r *DeviceRepository) GetDeviceByAddress(ctx context.Context, identityID uuid.UUID, address string) (*models.Device, error) {
	dev := new(models.Device)
	err := r.db.NewSelect().
		Model(dev).
		Where("identity_id = ? AND address = ?", identityID, address).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, errors.Wrap(err, "deviceRepo.GetDeviceByAddress.Scan")
	}
	return dev, nil
}

func (r *DeviceRepository) ListDevices(ctx context.Context, identityID uuid.UUID) ([]models.Device, error) {
	var devices []models.Device
	err := r.db.NewSelect().
		Model(&devices).
		Where("identity_id = ?", identityID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "deviceRepo.ListDevices.Scan")
	}
	return devices, nil
}

func (r *DeviceRepository) CountDevices(ctx context.Context, identityID uuid.UUID) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.Device)(nil)).
		Where("identity_id = ?", identityID).
		Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "deviceRepo.CountDevices")
	}
	return count, nil
}

func (r *DeviceRepository) DeleteDeviceCascade(ctx context.Context, deviceID uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {

		if _, err := tx.NewDelete().
			Model((*messageModels.Message)(nil)).
			Where("sender_device_id = ? OR recipient_device_id = ?", deviceID, deviceID).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "deviceRepo.Delete.messages")
		}

		if _, err := tx.NewDelete().
			Model((*models.OneTimePreKey)(nil)).
			Where("device_id = ?", deviceID).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "deviceRepo.Delete.oneTimePreKeys")
		}

		if _, err := tx.NewDelete().
			Model((*models.SignedPreKey)(nil)).
			Where("device_id = ?", deviceID).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "deviceRepo.Delete.signedPreKey")
		}

		res, err := tx.NewDelete().
			Model((*models.Device)(nil)).
			Where("id = ?", deviceID).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "deviceRepo.Delete.device")
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrDeviceNotFound
		}

		return nil
	})
}

func (r *DeviceRepository) UploadOneTimePreKeys(ctx context.Context, deviceID uuid.UUID, keys []models.OneTimePreKey, limit int) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {

		// Lock the device row: concurrent uploads for the same device must
		// not jointly exceed the ceiling.
		dev := new(models.Device)
		err := tx.NewSelect().
			Model(dev).
			Where("id = ?", deviceID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrDeviceNotFound
			}
			return errors.Wrap(err, "deviceRepo.Upload.lockDevice")
		}

		count, err := tx.NewSelect().
			Model((*models.OneTimePreKey)(nil)).
			Where("device_id = ?", deviceID).
			Count(ctx)
		if err != nil {
			return errors.Wrap(err, "deviceRepo.Upload.count")
		}
		if count+len(keys) > limit {
			return ErrPreKeyLimitReached
		}

		keyIDs := make([]uint32, 0, len(keys))
		for i := range keys {
			keys[i].DeviceID = deviceID
			keyIDs = append(keyIDs, keys[i].KeyID)
		}

		duplicate, err := tx.NewSelect().
			Model((*models.OneTimePreKey)(nil)).
			Where("device_id = ? AND key_id IN (?)", deviceID, bun.In(keyIDs)).
			Exists(ctx)
		if err != nil {
			return errors.Wrap(err, "deviceRepo.Upload.checkDuplicates")
		}
		if duplicate {
			return ErrDuplicateKeyID
		}

		if _, err := tx.NewInsert().Model(&keys).Exec(ctx); err != nil {
			return errors.Wrap(err, "deviceRepo.Upload.insert")
		}

		return nil
	})
}

func (r *DeviceRepository) ReplaceSignedPreKey(ctx context.Context, spk *models.SignedPreKey) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {

		if _, err := tx.NewDelete().
			Model((*models.SignedPreKey)(nil)).
			Where("device_id = ?", spk.DeviceID).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "deviceRepo.ReplaceSignedPreKey.delete")
		}

		if _, err := tx.NewInsert().Model(spk).Returning("*").Exec(ctx); err != nil {
			return errors.Wrap(err, "deviceRepo.ReplaceSignedPreKey.insert")
		}

		return nil
	})
}

func (r *DeviceRepository) GetSignedPreKey(ctx context.Context, deviceID uuid.UUID) (*models.SignedPreKey, error) {
	spk := new(models.SignedPreKey)
	err := r.db.NewSelect().Model(spk).Where("device_id = ?", deviceID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSignedPreKeyNotFound
		}
		return nil, errors.Wrap(err, "deviceRepo.GetSignedPreKey.Scan")
	}
	return spk, nil
}

func (r *DeviceRepository) ConsumeOneTimePreKey(ctx context.Context, deviceID uuid.UUID) (*models.OneTimePreKey, error) {
	key := new(models.OneTimePreKey)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return consumeOneTimePreKey(ctx, tx, deviceID, key)
	})
	if err != nil {
		return nil, err
	}

	return key, nil
}

// consumeOneTimePreKey implements the exactly-once hand-out: SKIP LOCKED
// makes concurrent consumers pick distinct rows, and the delete inside the
// same transaction destroys the key before anyone else can see it.
func consumeOneTimePreKey(ctx context.Context, tx bun.Tx, deviceID uuid.UUID, key *models.OneTimePreKey) error {
	err := tx.NewSelect().
		Model(key).
		Where("device_id = ?", deviceID).
		Limit(1).
		For("UPDATE SKIP LOCKED").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoPreKeysAvailable
		}
		return errors.Wrap(err, "deviceRepo.Consume.select")
	}

	if _, err := tx.NewDelete().Model(key).WherePK().Exec(ctx); err != nil {
		return errors.Wrap(err, "deviceRepo.Consume.delete")
	}

	return nil
}

func (r *DeviceRepository) CountOneTimePreKeys(ctx context.Context, deviceID uuid.UUID) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.OneTimePreKey)(nil)).
		Where("device_id = ?", deviceID).
		Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "deviceRepo.CountOneTimePreKeys")
	}
	return count, nil
}

func (r *DeviceRepository) FetchPreKeyBundle(ctx context.Context, dev *models.Device) (*models.PreKeyBundle, error) {
	var bundle models.PreKeyBundle

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		spk := new(models.SignedPreKey)
		err := tx.NewSelect().Model(spk).Where("device_id = ?", dev.ID).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSignedPreKeyNotFound
			}
			return errors.Wrap(err, "deviceRepo.FetchBundle.signedPreKey")
		}

		otpk := new(models.OneTimePreKey)
		if err := consumeOneTimePreKey(ctx, tx, dev.ID, otpk); err != nil {
			return err
		}

		bundle = models.PreKeyBundle{
			DeviceID:              dev.ID,
			Address:               dev.Address,
			RegistrationID:        dev.RegistrationID,
			IdentityKey:           dev.IdentityKey,
			SignedPreKeyID:        spk.KeyID,
			SignedPreKey:          spk.PublicKey,
			SignedPreKeySignature: spk.Signature,
			OneTimePreKeyID:       otpk.KeyID,
			OneTimePreKey:         otpk.PublicKey,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &bundle, nil
}
