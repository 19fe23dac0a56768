package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/uptrace/bun"

	"keyrelay/internal/device"
	"keyrelay/internal/message"
	"keyrelay/pkg/errors"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	devices  device.DeviceUsecase
	messages message.MessageUsecase
	db       *bun.DB
}

func NewHandler(devices device.DeviceUsecase, messages message.MessageUsecase, db *bun.DB) *Handler {
	return &Handler{devices: devices, messages: messages, db: db}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error maps the error taxonomy onto HTTP statuses and emits the structured
// error body the clients consume.
func (h *Handler) Error(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	h.JSON(w, statusForCode(code), map[string]string{
		"code":    string(code),
		"message": err.Error(),
	})
}

func statusForCode(code errors.Code) int {
	switch code {
	case errors.CodeInvalidArgument:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeAlreadyExists, errors.CodeResourceExhausted, errors.CodePermissionDenied:
		return http.StatusForbidden
	case errors.CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case errors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case errors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func parseRegistrationID(raw string) (uint32, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.ErrInvalidRegistration
	}
	return uint32(id), nil
}
