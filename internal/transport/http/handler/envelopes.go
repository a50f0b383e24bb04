package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-mail-verify/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SignupEnvelope wraps begin-confirmation responses. TokenPreview is set
// only outside production.
type SignupEnvelope struct {
	OK           bool   `json:"ok"`
	Message      string `json:"message,omitempty"`
	TokenPreview string `json:"tokenPreview,omitempty"`
	Error        string `json:"error,omitempty"`
}

// StatusEnvelope wraps confirmation-status responses.
type StatusEnvelope struct {
	OK        bool   `json:"ok"`
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{OK: false, Error: msg})
}

// httpError maps service errors onto the response taxonomy: delivery
// failures are 500-class, credential and input errors 400-class.
func httpError(w http.ResponseWriter, err error) {
	if _, ok := domain.IsDeliveryError(err); ok {
		writeError(w, http.StatusInternalServerError, "failed to send email, please try again later")
		return
	}
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
