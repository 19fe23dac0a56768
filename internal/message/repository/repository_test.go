package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	deviceModels "keyrelay/internal/device/model"
	identityModels "keyrelay/internal/identity/model"
	models "keyrelay/internal/message/model"
	"keyrelay/pkg/logger"
)

var (
	testDB      *bun.DB
	pgContainer *postgres.PostgresContainer
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("keyrelay"),
		postgres.WithUsername("keyrelay"),
		postgres.WithPassword("password"),
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
		(*deviceModels.Device)(nil),
		(*models.Message)(nil),
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
	for _, table := range []string{"messages", "devices", "identities"} {
		_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE `+table+` RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	}
}

func createDevice(t *testing.T, username, address string, registrationID uint32) *deviceModels.Device {
	t.Helper()
	ident := &identityModels.Identity{Username: username}
	_, err := testDB.NewInsert().Model(ident).Returning("*").Exec(context.Background())
	require.NoError(t, err)

	dev := &deviceModels.Device{
		IdentityID:     ident.ID,
		Address:        address,
		RegistrationID: registrationID,
		IdentityKey:    make([]byte, 32),
	}
	_, err = testDB.NewInsert().Model(dev).Returning("*").Exec(context.Background())
	require.NoError(t, err)
	return dev
}

func Test_CreateAndList(t *testing.T) {
	repo := NewMessageRepository(testDB, logger.Logger{})

	t.Run("inbox is oldest first and reads are idempotent", func(t *testing.T) {
		defer truncateAll(t)
		sender := createDevice(t, "alice", "alice-phone", 1)
		recipient := createDevice(t, "bob", "bob-phone", 2)

		contents := [][]byte{[]byte("first"), []byte("second"), []byte("third")}
		for _, c := range contents {
			msg := &models.Message{
				SenderDeviceID:    sender.ID,
				RecipientDeviceID: recipient.ID,
				Content:           c,
			}
			require.NoError(t, repo.Create(context.Background(), msg))
			require.NotZero(t, msg.ID)
		}

		got, err := repo.ListForRecipient(context.Background(), recipient.ID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i := range contents {
			assert.Equal(t, contents[i], got[i].Content)
			assert.Equal(t, sender.ID, got[i].SenderDeviceID)
		}

		// listing does not consume
		again, err := repo.ListForRecipient(context.Background(), recipient.ID)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	})

	t.Run("sender's own inbox stays empty", func(t *testing.T) {
		defer truncateAll(t)
		sender := createDevice(t, "alice", "alice-phone", 1)
		recipient := createDevice(t, "bob", "bob-phone", 2)

		msg := &models.Message{SenderDeviceID: sender.ID, RecipientDeviceID: recipient.ID, Content: []byte("x")}
		require.NoError(t, repo.Create(context.Background(), msg))

		got, err := repo.ListForRecipient(context.Background(), sender.ID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func Test_DeleteOwned(t *testing.T) {
	repo := NewMessageRepository(testDB, logger.Logger{})

	createMessage := func(t *testing.T, sender, recipient uuid.UUID, content string) *models.Message {
		msg := &models.Message{SenderDeviceID: sender, RecipientDeviceID: recipient, Content: []byte(content)}
		require.NoError(t, repo.Create(context.Background(), msg))
		return msg
	}

	t.Run("deletes an owned batch", func(t *testing.T) {
		defer truncateAll(t)
		sender := createDevice(t, "alice", "alice-phone", 1)
		recipient := createDevice(t, "bob", "bob-phone", 2)

		m1 := createMessage(t, sender.ID, recipient.ID, "one")
		m2 := createMessage(t, sender.ID, recipient.ID, "two")
		keep := createMessage(t, sender.ID, recipient.ID, "keep")

		require.NoError(t, repo.DeleteOwned(context.Background(), recipient.ID, []int64{m1.ID, m2.ID}))

		got, err := repo.ListForRecipient(context.Background(), recipient.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, keep.ID, got[0].ID)
	})

	t.Run("unknown id rejects the whole batch", func(t *testing.T) {
		defer truncateAll(t)
		sender := createDevice(t, "alice", "alice-phone", 1)
		recipient := createDevice(t, "bob", "bob-phone", 2)

		owned := createMessage(t, sender.ID, recipient.ID, "one")

		err := repo.DeleteOwned(context.Background(), recipient.ID, []int64{owned.ID, owned.ID + 1000})
		assert.ErrorIs(t, err, ErrMessageNotFound)

		// nothing deleted
		got, err := repo.ListForRecipient(context.Background(), recipient.ID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("foreign message rejects the whole batch", func(t *testing.T) {
		defer truncateAll(t)
		sender := createDevice(t, "alice", "alice-phone", 1)
		recipient := createDevice(t, "bob", "bob-phone", 2)
		other := createDevice(t, "carol", "carol-phone", 3)

		owned := createMessage(t, sender.ID, recipient.ID, "one")
		foreign := createMessage(t, sender.ID, other.ID, "two")

		err := repo.DeleteOwned(context.Background(), recipient.ID, []int64{owned.ID, foreign.ID})
		assert.ErrorIs(t, err, ErrNotMessageOwner)

		got, err := repo.ListForRecipient(context.Background(), recipient.ID)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		othersInbox, err := repo.ListForRecipient(context.Background(), other.ID)
		require.NoError(t, err)
		assert.Len(t, othersInbox, 1)
	})
}
