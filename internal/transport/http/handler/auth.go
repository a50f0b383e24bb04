package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-mail-verify/internal/application/verification"
	"github.com/go-mail-verify/internal/pkg/validate"
)

// AuthHandler exposes the confirmation and password-reset flows.
type AuthHandler struct {
	svc        verification.Service
	production bool
}

func NewAuthHandler(svc verification.Service, production bool) *AuthHandler {
	return &AuthHandler{svc: svc, production: production}
}

type signupRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,otp"`
}

type statusQuery struct {
	Email string `validate:"required,email"`
}

// Signup begins the confirmation flow: POST /auth/signup {email}.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.svc.BeginConfirmation(r.Context(), req.Email)
	if err != nil {
		httpError(w, err)
		return
	}

	resp := SignupEnvelope{OK: true, Message: "confirmation email sent"}
	if !h.production {
		resp.TokenPreview = token
	}
	writeJSON(w, http.StatusOK, resp)
}

// Confirm completes the confirmation flow: GET /auth/confirm?token=...
func (h *AuthHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	email, err := h.svc.CompleteConfirmation(r.Context(), token)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{OK: true, Message: fmt.Sprintf("%s confirmed", email)})
}

// RequestReset begins the reset flow: POST /auth/request-reset {email}.
func (h *AuthHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.BeginReset(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{OK: true, Message: "OTP sent to email"})
}

// VerifyOTP completes the reset flow: POST /auth/verify-otp {email, otp}.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.svc.CompleteReset(r.Context(), req.Email, req.OTP) {
		writeJSON(w, http.StatusOK, MessageEnvelope{OK: true, Message: "OTP verified"})
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{OK: false, Message: "invalid or expired OTP"})
}

// Status reports confirmation state: GET /auth/status?email=...
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	q := statusQuery{Email: r.URL.Query().Get("email")}
	if err := validate.Struct(&q); err != nil {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	writeJSON(w, http.StatusOK, StatusEnvelope{
		OK:        true,
		Email:     q.Email,
		Confirmed: h.svc.ConfirmationStatus(q.Email),
	})
}
