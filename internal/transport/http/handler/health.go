package handler

import (
	"net/http"
	"time"
)

// HealthHandler handles health-check and service metadata endpoints.
type HealthHandler struct {
	env string
}

func NewHealthHandler(env string) *HealthHandler { return &HealthHandler{env: env} }

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"status": "healthy",
	})
}

// Status serves GET /api/v1/status with service metadata.
func (h *HealthHandler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":          true,
		"service":     "mail-verify-api",
		"environment": h.env,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"endpoints": map[string]string{
			"POST /auth/signup":        "send confirmation email",
			"GET /auth/confirm":        "confirm email with token",
			"POST /auth/request-reset": "request password reset OTP",
			"POST /auth/verify-otp":    "verify OTP",
			"GET /auth/status":         "check email confirmation status",
		},
	})
}
