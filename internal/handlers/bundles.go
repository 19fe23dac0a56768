package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"keyrelay/internal/api/middleware"
	"keyrelay/pkg/errors"
)

type bundleResponse struct {
	DeviceID       uuid.UUID `json:"deviceId"`
	Address        string    `json:"address"`
	RegistrationID uint32    `json:"registrationId"`
	IdentityKey    []byte    `json:"identityKey"`

	SignedPreKeyID        uint32 `json:"signedPreKeyId"`
	SignedPreKey          []byte `json:"signedPreKey"`
	SignedPreKeySignature []byte `json:"signedPreKeySignature"`

	OneTimePreKeyID uint32 `json:"preKeyId"`
	OneTimePreKey   []byte `json:"preKey"`
}

// FetchBundles handles GET /v1/bundles/{username}?registrationId=N.
// Each successful call permanently consumes one one-time prekey per target
// device; retries are not free.
func (h *Handler) FetchBundles(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromContext(r.Context())

	targetUsername := chi.URLParam(r, "username")
	if targetUsername == "" {
		h.Error(w, errors.InvalidArg("target username is required"))
		return
	}

	ownRegistrationID, err := parseRegistrationID(r.URL.Query().Get("registrationId"))
	if err != nil {
		h.Error(w, err)
		return
	}

	bundles, err := h.devices.FetchBundles(r.Context(), ident.ID, ownRegistrationID, targetUsername)
	if err != nil {
		h.Error(w, err)
		return
	}

	resp := make([]bundleResponse, 0, len(bundles))
	for _, b := range bundles {
		resp = append(resp, bundleResponse{
			DeviceID:              b.DeviceID,
			Address:               b.Address,
			RegistrationID:        b.RegistrationID,
			IdentityKey:           b.IdentityKey,
			SignedPreKeyID:        b.SignedPreKeyID,
			SignedPreKey:          b.SignedPreKey,
			SignedPreKeySignature: b.SignedPreKeySignature,
			OneTimePreKeyID:       b.OneTimePreKeyID,
			OneTimePreKey:         b.OneTimePreKey,
		})
	}

	h.JSON(w, http.StatusOK, map[string]any{"bundles": resp})
}
