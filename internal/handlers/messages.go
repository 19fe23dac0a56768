package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"keyrelay/internal/api/middleware"
	"keyrelay/internal/message"
	"keyrelay/pkg/errors"
)

type submitMessageItem struct {
	RecipientUsername       string `json:"recipient"`
	RecipientAddress        string `json:"recipientAddress"`
	RecipientRegistrationID uint32 `json:"recipientRegistrationId"`
	Content                 []byte `json:"content"`
}

type submitMessagesRequest struct {
	Messages []submitMessageItem `json:"messages"`
}

type submitResultItem struct {
	Status    string `json:"status"`
	MessageID int64  `json:"messageId,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

type messageItem struct {
	ID             int64     `json:"id"`
	Created        time.Time `json:"created"`
	Content        []byte    `json:"content"`
	SenderDeviceID uuid.UUID `json:"senderDeviceId"`
}

type deleteMessagesRequest struct {
	MessageIDs []int64 `json:"messageIds"`
}

// SubmitMessages handles POST /v1/messages/{registrationId}.
func (h *Handler) SubmitMessages(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	registrationID, err := parseRegistrationID(chi.URLParam(r, "registrationId"))
	if err != nil {
		h.Error(w, err)
		return
	}

	var req submitMessagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, errors.InvalidArg("invalid request body"))
		return
	}

	items := make([]message.SubmitMessageItem, 0, len(req.Messages))
	for _, m := range req.Messages {
		items = append(items, message.SubmitMessageItem{
			RecipientUsername:       m.RecipientUsername,
			RecipientAddress:        m.RecipientAddress,
			RecipientRegistrationID: m.RecipientRegistrationID,
			Content:                 m.Content,
		})
	}

	results, err := h.messages.Submit(r.Context(), ident.ID, registrationID, items)
	if err != nil {
		h.Error(w, err)
		return
	}

	resp := make([]submitResultItem, 0, len(results))
	for _, res := range results {
		resp = append(resp, submitResultItem{
			Status:    res.Status,
			MessageID: res.MessageID,
			Code:      res.Code,
			Message:   res.Message,
		})
	}

	h.JSON(w, http.StatusCreated, map[string]any{"results": resp})
}

// ListMessages handles GET /v1/messages/{registrationId}.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	registrationID, err := parseRegistrationID(chi.URLParam(r, "registrationId"))
	if err != nil {
		h.Error(w, err)
		return
	}

	msgs, err := h.messages.List(r.Context(), ident.ID, registrationID)
	if err != nil {
		h.Error(w, err)
		return
	}

	resp := make([]messageItem, 0, len(msgs))
	for _, m := range msgs {
		resp = append(resp, messageItem{
			ID:             m.ID,
			Created:        m.Created,
			Content:        m.Content,
			SenderDeviceID: m.SenderDeviceID,
		})
	}

	h.JSON(w, http.StatusOK, map[string]any{"messages": resp})
}

// DeleteMessages handles DELETE /v1/messages/{registrationId}.
func (h *Handler) DeleteMessages(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	registrationID, err := parseRegistrationID(chi.URLParam(r, "registrationId"))
	if err != nil {
		h.Error(w, err)
		return
	}

	var req deleteMessagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, errors.InvalidArg("invalid request body"))
		return
	}

	if err := h.messages.Delete(r.Context(), ident.ID, registrationID, req.MessageIDs); err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]string{
		"code":    "messages_deleted",
		"message": "Messages successfully deleted",
	})
}
