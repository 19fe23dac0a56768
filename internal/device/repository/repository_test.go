package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	models "keyrelay/internal/device/model"
	identityModels "keyrelay/internal/identity/model"
	messageModels "keyrelay/internal/message/model"
	"keyrelay/pkg/logger"
)

var (
	testDB      *bun.DB
	pgContainer *postgres.PostgresContainer
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	dbName := "keyrelay"
	dbUser := "keyrelay"
	dbPassword := "password"

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}
	pgContainer = postgresContainer

	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connections string, %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(connStr))
	sqlDB := sql.OpenDB(connector)
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	_, err = testDB.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`)
	if err != nil {
		log.Fatalf("failed to create extension: %v", err)
	}

	tables := []any{
		(*identityModels.Identity)(nil),
		(*models.Device)(nil),
		(*models.SignedPreKey)(nil),
		(*models.OneTimePreKey)(nil),
		(*messageModels.Message)(nil),
	}

	for _, t := range tables {
		if _, err := testDB.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			testDB.Close()
			log.Fatalf("failed to create table for %T: %v", t, err)
		}
	}

	code := m.Run()

	testDB.Close()

	os.Exit(code)
}

func truncateAll(t *testing.T) {
	t.Helper()
	for _, table := range []string{"messages", "one_time_pre_keys", "signed_pre_keys", "devices", "identities"} {
		_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE `+table+` RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	}
}

func createIdentity(t *testing.T, username string) *identityModels.Identity {
	t.Helper()
	ident := &identityModels.Identity{Username: username}
	_, err := testDB.NewInsert().Model(ident).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return ident
}

func testKeyMaterial(registrationID uint32, nOTPKs int) (*models.SignedPreKey, []models.OneTimePreKey) {
	pub := make([]byte, 32)
	sig := make([]byte, 64)
	for i := range pub {
		pub[i] = byte(i + 1)
	}
	for i := range sig {
		sig[i] = byte(i + 33)
	}

	spk := &models.SignedPreKey{
		KeyID:     registrationID,
		PublicKey: pub,
		Signature: sig,
	}

	otpks := make([]models.OneTimePreKey, nOTPKs)
	for i := range otpks {
		otpks[i] = models.OneTimePreKey{
			KeyID:     uint32(i + 1),
			PublicKey: pub,
		}
	}
	return spk, otpks
}

func Test_RegisterDeviceWithKeys(t *testing.T) {
	repo := NewDeviceRepository(testDB, logger.Logger{})

	t.Run("registers device with initial keys", func(t *testing.T) {
		defer truncateAll(t)
		ident := createIdentity(t, "alice")

		spk, otpks := testKeyMaterial(100, 5)
		dev := &models.Device{
			IdentityID:     ident.ID,
			Address:        "alice-phone",
			RegistrationID: 100,
			IdentityKey:    make([]byte, 32),
		}

		err := repo.RegisterDeviceWithKeys(context.Background(), dev, spk, otpks, 3)
		require.NoError(t, err)
		require.NotEqual(t, dev.ID.String(), "00000000-0000-0000-0000-000000000000")
		require.False(t, dev.CreatedAt.IsZero())

		count, err := repo.CountOneTimePreKeys(context.Background(), dev.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, count)

		gotSPK, err := repo.GetSignedPreKey(context.Background(), dev.ID)
		require.NoError(t, err)
		assert.Equal(t, spk.KeyID, gotSPK.KeyID)
		assert.Equal(t, spk.PublicKey, gotSPK.PublicKey)
		assert.Equal(t, spk.Signature, gotSPK.Signature)
	})

	t.Run("rejects duplicate address", func(t *testing.T) {
		defer truncateAll(t)
		ident := createIdentity(t, "alice")

		spk, otpks := testKeyMaterial(100, 2)
		dev := &models.Device{IdentityID: ident.ID, Address: "alice-phone", RegistrationID: 100, IdentityKey: make([]byte, 32)}
		require.NoError(t, repo.RegisterDeviceWithKeys(context.Background(), dev, spk, otpks, 3))

		spk2, otpks2 := testKeyMaterial(200, 2)
		dup := &models.Device{IdentityID: ident.ID, Address: "alice-phone", RegistrationID: 200, IdentityKey: make([]byte, 32)}
		err := repo.RegisterDeviceWithKeys(context.Background(), dup, spk2, otpks2, 3)
		assert.ErrorIs(t, err, ErrDeviceExists)
	})

	t.Run("enforces device limit", func(t *testing.T) {
		defer truncateAll(t)
		ident := createIdentity(t, "alice")

		for i := 0; i < 3; i++ {
			spk, otpks := testKeyMaterial(uint32(i), 1)
			dev := &models.Device{
				IdentityID:     ident.ID,
				Address:        "device-" + string(rune('a'+i)),
				RegistrationID: uint32(i),
				IdentityKey:    make([]byte, 32),
			}
			require.NoError(t, repo.RegisterDeviceWithKeys(context.Background(), dev, spk, otpks, 3))
		}

		spk, otpks := testKeyMaterial(99, 1)
		extra := &models.Device{IdentityID: ident.ID, Address: "device-z", RegistrationID: 99, IdentityKey: make([]byte, 32)}
		err := repo.RegisterDeviceWithKeys(context.Background(), extra, spk, otpks, 3)
		assert.ErrorIs(t, err, ErrDeviceLimitReached)

		count, err := repo.CountDevices(context.Background(), ident.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}

func Test_UploadOneTimePreKeys(t *testing.T) {
	repo := NewDeviceRepository(testDB, logger.Logger{})

	setup := func(t *testing.T, nInitial int) *models.Device {
		ident := createIdentity(t, "alice")
		spk, otpks := testKeyMaterial(1, nInitial)
		dev := &models.Device{IdentityID: ident.ID, Address: "alice-phone", RegistrationID: 1, IdentityKey: make([]byte, 32)}
		require.NoError(t, repo.RegisterDeviceWithKeys(context.Background(), dev, spk, otpks, 3))
		return dev
	}

	t.Run("fills exactly to the ceiling", func(t *testing.T) {
		defer truncateAll(t)
		dev := setup(t, 0)

		keys := make([]models.OneTimePreKey, 100)
		for i := range keys {
			keys[i] = models.OneTimePreKey{KeyID: uint32(i + 1), PublicKey: make([]byte, 32)}
		}
		require.NoError(t, repo.UploadOneTimePreKeys(context.Background(), dev.ID, keys, 100))

		count, err := repo.CountOneTimePreKeys(context.Background(), dev.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, count)
	})

	t.Run("rejects batch that would exceed the ceiling", func(t *testing.T) {
		defer truncateAll(t)
		dev := setup(t, 99)

		keys := []models.OneTimePreKey{
			{KeyID: 5000, PublicKey: make([]byte, 32)},
			{KeyID: 5001, PublicKey: make([]byte, 32)},
		}
		err := repo.UploadOneTimePreKeys(context.Background(), dev.ID, keys, 100)
		assert.ErrorIs(t, err, ErrPreKeyLimitReached)

		// the rejected batch must not have partially landed
		count, err := repo.CountOneTimePreKeys(context.Background(), dev.ID)
		require.NoError(t, err)
		assert.Equal(t, 99, count)
	})

	t.Run("rejects key id already stored for the device", func(t *testing.T) {
		defer truncateAll(t)
		dev := setup(t, 3)

		keys := []models.OneTimePreKey{
			{KeyID: 2, PublicKey: make([]byte, 32)}, // already present
			{KeyID: 5000, PublicKey: make([]byte, 32)},
		}
		err := repo.UploadOneTimePreKeys(context.Background(), dev.ID, keys, 100)
		assert.ErrorIs(t, err, ErrDuplicateKeyID)

		count, err := repo.CountOneTimePreKeys(context.Background(), dev.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("unknown device", func(t *testing.T) {
		defer truncateAll(t)
		dev := setup(t, 0)
		require.NoError(t, repo.DeleteDeviceCascade(context.Background(), dev.ID))

		keys := []models.OneTimePreKey{{KeyID: 1, PublicKey: make([]byte, 32)}}
		err := repo.UploadOneTimePreKeys(context.Background(), dev.ID, keys, 100)
		assert.ErrorIs(t, err, ErrDeviceNotFound)
	})
}

func Test_ConsumeOneTimePreKey(t *testing.T) {
	repo := NewDeviceRepository(testDB, logger.Logger{})

	setup := func(t *testing.T, nKeys int) *models.Device {
		ident := createIdentity(t, "alice")
		spk, otpks := testKeyMaterial(1, nKeys)
		dev := &models.Device{IdentityID: ident.ID, Address: "alice-phone", RegistrationID: 1, IdentityKey: make([]byte, 32)}
		require.NoError(t, repo.RegisterDeviceWithKeys(context.Background(), dev, spk, otpks, 3))
		return dev
	}

	t.Run("consumed key is destroyed", func(t *testing.T) {
		defer truncateAll(t)
		dev := setup(t, 1)

		key, err := repo.ConsumeOneTimePreKey(context.Background(), dev.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, key.PublicKey)

		count, err := repo.CountOneTimePreKeys(context.Background(), dev.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		_, err = repo.ConsumeOneTimePreKey(context.Background(), dev.ID)
		assert.ErrorIs(t, err, ErrNoPreKeysAvailable)
	})

	t.Run("concurrent consumers never share a key", func(t *testing.T) {
		defer truncateAll(t)
		const n = 10
		dev := setup(t, n)

		var (
			mu     sync.Mutex
			wg     sync.WaitGroup
			keyIDs = make(map[uint32]int)
			errs   []error
		)

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				key, err := repo.ConsumeOneTimePreKey(context.Background(), dev.ID)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					errs = append(errs, err)
					return
				}
				keyIDs[key.KeyID]++
			}()
		}
		wg.Wait()

		require.Empty(t, errs)
		assert.Len(t, keyIDs, n)
		for id, seen := range keyIDs {
			assert.Equal(t, 1, seen, "key %d handed out more than once", id)
		}

		_, err := repo.ConsumeOneTimePreKey(context.Background(), dev.ID)
		assert.ErrorIs(t, err, ErrNoPreKeysAvailable)
	})
}

func Test_ReplaceSignedPreKey(t *testing.T) {
	repo := NewDeviceRepository(testDB, logger.Logger{})

	t.Run("replaces the row wholesale", func(t *testing.T) {
		defer truncateAll(t)
		ident := createIdentity(t, "alice")
		spk, otpks := testKeyMaterial(1, 1)
		dev := &models.Device{IdentityID: ident.ID, Address: "alice-phone", RegistrationID: 1, IdentityKey: make([]byte, 32)}
		require.NoError(t, repo.RegisterDeviceWithKeys(context.Background(), dev, spk, otpks, 3))

		newPub := make([]byte, 32)
		newSig := make([]byte, 64)
		for i := range newPub {
			newPub[i] = byte(i + 201)
		}
		replacement := &models.SignedPreKey{
			DeviceID:  dev.ID,
			KeyID:     2,
			PublicKey: newPub,
			Signature: newSig,
		}
		require.NoError(t, repo.ReplaceSignedPreKey(context.Background(), replacement))

		got, err := repo.GetSignedPreKey(context.Background(), dev.ID)
		require.NoError(t, err)
		assert.Equal(t, uint32(2), got.KeyID)
		assert.Equal(t, newPub, got.PublicKey)

		// exactly one row per device
		count, err := testDB.NewSelect().
			Model((*models.SignedPreKey)(nil)).
			Where("device_id = ?", dev.ID).
			Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func Test_FetchPreKeyBundle(t *testing.T) {
	repo := NewDeviceRepository(testDB, logger.Logger{})

	t.Run("bundle consumes one key", func(t *testing.T) {
		defer truncateAll(t)
		ident := createIdentity(t, "alice")
		spk, otpks := testKeyMaterial(7, 3)
		dev := &models.Device{IdentityID: ident.ID, Address: "alice-phone", RegistrationID: 7, IdentityKey: make([]byte, 32)}
		require.NoError(t, repo.RegisterDeviceWithKeys(context.Background(), dev, spk, otpks, 3))

		bundle, err := repo.FetchPreKeyBundle(context.Background(), dev)
		require.NoError(t, err)
		assert.Equal(t, dev.ID, bundle.DeviceID)
		assert.Equal(t, dev.Address, bundle.Address)
		assert.Equal(t, dev.RegistrationID, bundle.RegistrationID)
		assert.Equal(t, dev.IdentityKey, bundle.IdentityKey)
		assert.Equal(t, spk.KeyID, bundle.SignedPreKeyID)
		assert.Equal(t, spk.PublicKey, bundle.SignedPreKey)
		assert.Equal(t, spk.Signature, bundle.SignedPreKeySignature)
		assert.NotEmpty(t, bundle.OneTimePreKey)

		count, err := repo.CountOneTimePreKeys(context.Background(), dev.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("exhausted device yields no bundle", func(t *testing.T) {
		defer truncateAll(t)
		ident := createIdentity(t, "alice")
		spk, otpks := testKeyMaterial(7, 0)
		dev := &models.Device{IdentityID: ident.ID, Address: "alice-phone", RegistrationID: 7, IdentityKey: make([]byte, 32)}
		require.NoError(t, repo.RegisterDeviceWithKeys(context.Background(), dev, spk, otpks, 3))

		_, err := repo.FetchPreKeyBundle(context.Background(), dev)
		assert.ErrorIs(t, err, ErrNoPreKeysAvailable)
	})
}

func Test_DeleteDeviceCascade(t *testing.T) {
	repo := NewDeviceRepository(testDB, logger.Logger{})

	t.Run("removes keys and messages with the device", func(t *testing.T) {
		defer truncateAll(t)
		alice := createIdentity(t, "alice")
		bob := createIdentity(t, "bob")

		spkA, otpksA := testKeyMaterial(1, 2)
		devA := &models.Device{IdentityID: alice.ID, Address: "alice-phone", RegistrationID: 1, IdentityKey: make([]byte, 32)}
		require.NoError(t, repo.RegisterDeviceWithKeys(context.Background(), devA, spkA, otpksA, 3))

		spkB, otpksB := testKeyMaterial(2, 2)
		devB := &models.Device{IdentityID: bob.ID, Address: "bob-phone", RegistrationID: 2, IdentityKey: make([]byte, 32)}
		require.NoError(t, repo.RegisterDeviceWithKeys(context.Background(), devB, spkB, otpksB, 3))

		// one message in each direction
		sent := &messageModels.Message{SenderDeviceID: devA.ID, RecipientDeviceID: devB.ID, Content: []byte("x")}
		received := &messageModels.Message{SenderDeviceID: devB.ID, RecipientDeviceID: devA.ID, Content: []byte("y")}
		_, err := testDB.NewInsert().Model(sent).Exec(context.Background())
		require.NoError(t, err)
		_, err = testDB.NewInsert().Model(received).Exec(context.Background())
		require.NoError(t, err)

		require.NoError(t, repo.DeleteDeviceCascade(context.Background(), devA.ID))

		_, err = repo.GetDevice(context.Background(), alice.ID, 1)
		assert.ErrorIs(t, err, ErrDeviceNotFound)

		_, err = repo.GetSignedPreKey(context.Background(), devA.ID)
		assert.ErrorIs(t, err, ErrSignedPreKeyNotFound)

		count, err := repo.CountOneTimePreKeys(context.Background(), devA.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		msgCount, err := testDB.NewSelect().
			Model((*messageModels.Message)(nil)).
			Where("sender_device_id = ? OR recipient_device_id = ?", devA.ID, devA.ID).
			Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, msgCount)

		// bob's device and keys stay untouched
		_, err = repo.GetDevice(context.Background(), bob.ID, 2)
		assert.NoError(t, err)
		bobKeys, err := repo.CountOneTimePreKeys(context.Background(), devB.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, bobKeys)
	})

	t.Run("unknown device", func(t *testing.T) {
		defer truncateAll(t)
		ident := createIdentity(t, "alice")
		spk, otpks := testKeyMaterial(1, 1)
		dev := &models.Device{IdentityID: ident.ID, Address: "alice-phone", RegistrationID: 1, IdentityKey: make([]byte, 32)}
		require.NoError(t, repo.RegisterDeviceWithKeys(context.Background(), dev, spk, otpks, 3))
		require.NoError(t, repo.DeleteDeviceCascade(context.Background(), dev.ID))

		err := repo.DeleteDeviceCascade(context.Background(), dev.ID)
		assert.ErrorIs(t, err, ErrDeviceNotFound)
	})
}
