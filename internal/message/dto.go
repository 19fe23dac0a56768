package message

import (
	"time"

	"github.com/google/uuid"
)

type SubmitMessageItem struct {
	RecipientUsername       string
	RecipientAddress        string
	RecipientRegistrationID uint32
	Content                 []byte
}

const (
	SubmitStatusCreated = "created"
	SubmitStatusError   = "error"
)

// SubmitResultDTO reports the outcome for one submitted item; results are
// returned in input order.
type SubmitResultDTO struct {
	Status    string
	MessageID int64
	Code      string
	Message   string
}

type MessageDTO struct {
	ID             int64
	Created        time.Time
	Content        []byte
	SenderDeviceID uuid.UUID
}
