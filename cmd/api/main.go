package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-mail-verify/internal/application/delivery"
	"github.com/go-mail-verify/internal/config"
	jwtinfra "github.com/go-mail-verify/internal/infrastructure/jwt"
	"github.com/go-mail-verify/internal/infrastructure/memstore"
	"github.com/go-mail-verify/internal/infrastructure/smtp"
	"github.com/go-mail-verify/internal/pkg/clock"
	"github.com/go-mail-verify/internal/pkg/mailtmpl"
	transporthttp "github.com/go-mail-verify/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	clk := clock.New()

	tokens := jwtinfra.NewProvider(cfg, clk)
	ledger := memstore.NewOTPLedger(clk, cfg.OTPMaxAttempts)
	registry := memstore.NewConfirmedRegistry()
	mailer := smtp.NewMailer(cfg)
	gateway := delivery.NewGateway(mailer, clk, cfg.SendTimeout, cfg.ProbeTimeout)
	renderer := mailtmpl.New(mailtmpl.Branding{Name: cfg.BrandName, Primary: cfg.BrandPrimary})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background sweep of expired OTP records, stopped on shutdown.
	go ledger.Run(ctx, cfg.SweepInterval)

	// Best-effort SMTP connectivity check; sends are attempted either way.
	go func() {
		if err := gateway.Probe(ctx); err != nil {
			log.Printf("WARN: SMTP probe failed: %v (will attempt sends anyway)", err)
			return
		}
		log.Println("SMTP connection verified")
	}()

	deps := &transporthttp.Deps{
		Tokens:   tokens,
		Ledger:   ledger,
		Registry: registry,
		Gateway:  gateway,
		Renderer: renderer,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
