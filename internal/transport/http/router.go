package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-mail-verify/internal/application/delivery"
	"github.com/go-mail-verify/internal/application/verification"
	"github.com/go-mail-verify/internal/config"
	"github.com/go-mail-verify/internal/pkg/mailtmpl"
	"github.com/go-mail-verify/internal/transport/http/handler"
	appmiddleware "github.com/go-mail-verify/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Tokens   verification.TokenIssuer
	Ledger   verification.OTPStore
	Registry verification.ConfirmationStore
	Gateway  delivery.Gateway
	Renderer *mailtmpl.Renderer
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Email-sending endpoints get the tighter budget; OTP verification a
	// looser one (it sends nothing but is brute-forceable).
	emailRL := appmiddleware.NewRateLimiter(rate.Every(3*time.Minute), 5)
	otpRL := appmiddleware.NewRateLimiter(rate.Every(90*time.Second), 10)

	svc := verification.NewService(verification.ServiceDeps{
		Tokens:    deps.Tokens,
		Ledger:    deps.Ledger,
		Registry:  deps.Registry,
		Gateway:   deps.Gateway,
		Renderer:  deps.Renderer,
		AppURL:    cfg.AppURL,
		BrandName: cfg.BrandName,
		TokenTTL:  cfg.TokenTTL,
		OTPTTL:    cfg.OTPTTL,
	})

	healthH := handler.NewHealthHandler(cfg.AppEnv)
	authH := handler.NewAuthHandler(svc, cfg.IsProduction())

	r.Get("/health", healthH.Health)
	r.Get("/api/v1/status", healthH.Status)

	r.Route("/auth", func(r chi.Router) {
		r.With(emailRL.Limit).Post("/signup", authH.Signup)
		r.Get("/confirm", authH.Confirm)
		r.With(emailRL.Limit).Post("/request-reset", authH.RequestReset)
		r.With(otpRL.Limit).Post("/verify-otp", authH.VerifyOTP)
		r.Get("/status", authH.Status)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error":"endpoint not found"}`))
	})

	return r
}
