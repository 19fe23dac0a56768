package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"keyrelay/internal/api/middleware"
	"keyrelay/internal/device"
	"keyrelay/pkg/errors"
)

type uploadPreKeysRequest struct {
	PreKeys []oneTimePreKeyPayload `json:"preKeys"`
}

// UploadPreKeys handles POST /v1/prekeys/{registrationId}.
func (h *Handler) UploadPreKeys(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	registrationID, err := parseRegistrationID(chi.URLParam(r, "registrationId"))
	if err != nil {
		h.Error(w, err)
		return
	}

	var req uploadPreKeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, errors.InvalidArg("invalid request body"))
		return
	}

	keys := make([]device.OneTimePreKeyUpload, 0, len(req.PreKeys))
	for _, k := range req.PreKeys {
		keys = append(keys, device.OneTimePreKeyUpload{KeyID: k.KeyID, PublicKey: k.PublicKey})
	}

	if err := h.devices.UploadOneTimePreKeys(r.Context(), ident.ID, registrationID, keys); err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]string{
		"code":    "prekeys_stored",
		"message": "Prekeys successfully stored",
	})
}

// PreKeyCount handles GET /v1/prekeys/{registrationId}/count. Clients poll
// it to decide when to replenish.
func (h *Handler) PreKeyCount(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	registrationID, err := parseRegistrationID(chi.URLParam(r, "registrationId"))
	if err != nil {
		h.Error(w, err)
		return
	}

	count, err := h.devices.RemainingPreKeyCount(r.Context(), ident.ID, registrationID)
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]int{"count": count})
}

// RotateSignedPreKey handles PUT /v1/signedprekey/{registrationId}.
func (h *Handler) RotateSignedPreKey(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	registrationID, err := parseRegistrationID(chi.URLParam(r, "registrationId"))
	if err != nil {
		h.Error(w, err)
		return
	}

	var req signedPreKeyPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, errors.InvalidArg("invalid request body"))
		return
	}

	err = h.devices.RotateSignedPreKey(r.Context(), ident.ID, registrationID, device.SignedPreKeyUpload{
		KeyID:     req.KeyID,
		PublicKey: req.PublicKey,
		Signature: req.Signature,
	})
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]string{
		"code":    "signed_prekey_stored",
		"message": "Signed prekey successfully stored",
	})
}
