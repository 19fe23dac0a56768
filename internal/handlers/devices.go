package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"keyrelay/internal/api/middleware"
	"keyrelay/internal/device"
	"keyrelay/pkg/errors"
)

type signedPreKeyPayload struct {
	KeyID     uint32 `json:"keyId"`
	PublicKey []byte `json:"publicKey"`
	Signature []byte `json:"signature"`
}

type oneTimePreKeyPayload struct {
	KeyID     uint32 `json:"keyId"`
	PublicKey []byte `json:"publicKey"`
}

type registerDeviceRequest struct {
	Address        string                 `json:"address"`
	RegistrationID uint32                 `json:"registrationId"`
	IdentityKey    []byte                 `json:"identityKey"`
	SignedPreKey   signedPreKeyPayload    `json:"signedPreKey"`
	PreKeys        []oneTimePreKeyPayload `json:"preKeys"`
}

type deviceResponse struct {
	ID             uuid.UUID `json:"id"`
	Address        string    `json:"address"`
	RegistrationID uint32    `json:"registrationId"`
	IdentityKey    []byte    `json:"identityKey"`
	Created        time.Time `json:"created"`
}

// RegisterDevice handles POST /v1/devices.
func (h *Handler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	var req registerDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, errors.InvalidArg("invalid request body"))
		return
	}

	otpks := make([]device.OneTimePreKeyUpload, 0, len(req.PreKeys))
	for _, k := range req.PreKeys {
		otpks = append(otpks, device.OneTimePreKeyUpload{KeyID: k.KeyID, PublicKey: k.PublicKey})
	}

	dto, err := h.devices.Register(r.Context(), ident.ID, device.RegisterDeviceCommand{
		Address:        req.Address,
		RegistrationID: req.RegistrationID,
		IdentityKey:    req.IdentityKey,
		SignedPreKey: device.SignedPreKeyUpload{
			KeyID:     req.SignedPreKey.KeyID,
			PublicKey: req.SignedPreKey.PublicKey,
			Signature: req.SignedPreKey.Signature,
		},
		OneTimePreKeys: otpks,
	})
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusCreated, deviceResponse{
		ID:             dto.ID,
		Address:        dto.Address,
		RegistrationID: dto.RegistrationID,
		IdentityKey:    dto.IdentityKey,
		Created:        dto.Created,
	})
}

// DeregisterDevice handles DELETE /v1/devices/{registrationId}.
func (h *Handler) DeregisterDevice(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	registrationID, err := parseRegistrationID(chi.URLParam(r, "registrationId"))
	if err != nil {
		h.Error(w, err)
		return
	}

	if err := h.devices.Deregister(r.Context(), ident.ID, registrationID); err != nil {
		h.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
