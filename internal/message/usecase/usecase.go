package usecase

import (
	"context"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"keyrelay/config"
	"keyrelay/internal/device"
	deviceRepository "keyrelay/internal/device/repository"
	"keyrelay/internal/identity"
	"keyrelay/internal/message"
	models "keyrelay/internal/message/model"
	"keyrelay/internal/message/repository"
	"keyrelay/internal/metrics"
	"keyrelay/pkg/errors"
	"keyrelay/pkg/logger"
)

type MessageUsecase struct {
	repo         message.MessageRepository
	deviceUC     device.DeviceUsecase
	deviceRepo   device.DeviceRepository
	identityRepo identity.IdentityRepository
	logger       logger.Logger
	config       config.Config
}

func NewMessageUsecase(
	repo message.MessageRepository,
	deviceUC device.DeviceUsecase,
	deviceRepo device.DeviceRepository,
	identityRepo identity.IdentityRepository,
	logger logger.Logger,
	config config.Config,
) *MessageUsecase {
	return &MessageUsecase{
		repo:         repo,
		deviceUC:     deviceUC,
		deviceRepo:   deviceRepo,
		identityRepo: identityRepo,
		logger:       logger,
		config:       config,
	}
}

func (uc *MessageUsecase) Submit(ctx context.Context, identityID uuid.UUID, senderRegistrationID uint32, items []message.SubmitMessageItem) ([]message.SubmitResultDTO, error) {
	sender, err := uc.deviceUC.ResolveDevice(ctx, identityID, senderRegistrationID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, errors.InvalidArg("at least one message is required")
	}

	results := make([]message.SubmitResultDTO, 0, len(items))
	for i := range items {
		msgID, err := uc.submitOne(ctx, sender.ID, items[i])
		if err != nil {
			results = append(results, message.SubmitResultDTO{
				Status:  message.SubmitStatusError,
				Code:    string(errors.GetCode(err)),
				Message: err.Error(),
			})
			continue
		}
		metrics.MessagesRelayed.Inc()
		results = append(results, message.SubmitResultDTO{
			Status:    message.SubmitStatusCreated,
			MessageID: msgID,
		})
	}

	return results, nil
}

func (uc *MessageUsecase) submitOne(ctx context.Context, senderDeviceID uuid.UUID, item message.SubmitMessageItem) (int64, error) {
	if len(item.Content) == 0 {
		return 0, errors.ErrEmptyContent
	}
	if len(item.Content) > uc.config.Server.MaxContentBytes {
		return 0, errors.ErrContentTooLarge
	}

	recipient, err := uc.identityRepo.GetByUsername(ctx, item.RecipientUsername)
	if err != nil {
		return 0, errors.ErrNoRecipient
	}

	dev, err := uc.deviceRepo.GetDeviceByAddress(ctx, recipient.ID, item.RecipientAddress)
	if err != nil {
		if pkgerrors.Is(err, deviceRepository.ErrDeviceNotFound) {
			return 0, errors.ErrNoRecipientDevice
		}
		uc.logger.Error("error resolving recipient device", "err", err, "recipient", item.RecipientUsername)
		return 0, errors.Internal("internal server error")
	}

	// Reject ciphertext bound to a key bundle the device no longer holds
	// (reinstall between bundle fetch and send).
	if dev.RegistrationID != item.RecipientRegistrationID {
		return 0, errors.ErrRecipientChanged
	}

	msg := &models.Message{
		SenderDeviceID:    senderDeviceID,
		RecipientDeviceID: dev.ID,
		Content:           item.Content,
	}
	if err := uc.repo.Create(ctx, msg); err != nil {
		uc.logger.Error("error persisting message", "err", err)
		return 0, errors.Internal("internal server error")
	}

	return msg.ID, nil
}

func (uc *MessageUsecase) List(ctx context.Context, identityID uuid.UUID, registrationID uint32) ([]message.MessageDTO, error) {
	dev, err := uc.deviceUC.ResolveDevice(ctx, identityID, registrationID)
	if err != nil {
		return nil, err
	}

	msgs, err := uc.repo.ListForRecipient(ctx, dev.ID)
	if err != nil {
		uc.logger.Error("error listing messages", "err", err, "device_id", dev.ID)
		return nil, errors.Internal("internal server error")
	}

	dtos := make([]message.MessageDTO, 0, len(msgs))
	for i := range msgs {
		dtos = append(dtos, message.MessageDTO{
			ID:             msgs[i].ID,
			Created:        msgs[i].CreatedAt,
			Content:        msgs[i].Content,
			SenderDeviceID: msgs[i].SenderDeviceID,
		})
	}
	return dtos, nil
}

func (uc *MessageUsecase) Delete(ctx context.Context, identityID uuid.UUID, registrationID uint32, messageIDs []int64) error {
	dev, err := uc.deviceUC.ResolveDevice(ctx, identityID, registrationID)
	if err != nil {
		return err
	}

	if len(messageIDs) == 0 {
		return errors.InvalidArg("at least one message id is required")
	}

	seen := make(map[int64]bool, len(messageIDs))
	unique := make([]int64, 0, len(messageIDs))
	for _, id := range messageIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	err = uc.repo.DeleteOwned(ctx, dev.ID, unique)
	if err != nil {
		switch {
		case pkgerrors.Is(err, repository.ErrMessageNotFound):
			return errors.ErrMessageNotFound
		case pkgerrors.Is(err, repository.ErrNotMessageOwner):
			return errors.ErrNotMessageOwner
		}
		uc.logger.Error("error deleting messages", "err", err, "device_id", dev.ID)
		return errors.Internal("internal server error")
	}

	metrics.MessagesDeleted.Add(float64(len(unique)))
	return nil
}
