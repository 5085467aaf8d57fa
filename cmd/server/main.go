package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ozarkhomeloans/portal/config"
	"github.com/ozarkhomeloans/portal/internal/auth"
	"github.com/ozarkhomeloans/portal/internal/database"
	"github.com/ozarkhomeloans/portal/internal/notify"
	"github.com/ozarkhomeloans/portal/internal/token"
	"github.com/ozarkhomeloans/portal/internal/uploads"
	"github.com/ozarkhomeloans/portal/internal/web/handlers"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("portal-server %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", buildDate)
		os.Exit(0)
	}

	cfg := config.Load()

	if cfg.Session.Secret == "" {
		log.Println("WARNING: SESSION_SECRET is empty — using insecure default (set SESSION_SECRET in production)")
		cfg.Session.Secret = "insecure-dev-secret-change-me"
	}
	if cfg.JWT.SigningKey == "" {
		key, err := token.GenerateSigningKey()
		if err != nil {
			log.Fatalf("Failed to generate JWT signing key: %v", err)
		}
		log.Println("WARNING: JWT_SIGNING_KEY is empty — generated an ephemeral key; tokens will not survive restarts")
		cfg.JWT.SigningKey = key
	}

	// Initialize SQLite database.
	db, err := database.New(cfg.DB.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize services.
	authService := auth.New(db, cfg)
	tokenService := token.New(cfg.JWT.SigningKey, cfg.JWT.Issuer)

	uploadStore, err := uploads.New(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize upload store: %v", err)
	}

	var smsSender notify.Sender = notify.NopSender{}
	if cfg.SMS.TelnyxAPIKey != "" && cfg.SMS.FromNumber != "" {
		smsSender = notify.NewTelnyxSender(cfg.SMS.TelnyxAPIKey, cfg.SMS.FromNumber)
		log.Println("SMS notifications enabled via Telnyx")
	} else {
		log.Println("SMS notifications disabled (TELNYX_API_KEY or TELNYX_FROM_NUMBER not set)")
	}

	// Initialize router.
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Initialize handlers.
	h := handlers.New(db, cfg, authService, tokenService, uploadStore, smsSender)

	// Uploaded file serving.
	fileServer := http.FileServer(http.Dir(uploadStore.Dir()))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	// Public pages.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loans", http.StatusFound)
	})
	r.Get("/loans", h.LoansPage)
	r.Get("/loans/{slug}", h.LoanDetailPage)
	r.Get("/about", h.AboutPage)
	r.Get("/claim/{token}", h.ClaimPage)

	// Public JSON API.
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		r.Get("/loan-products", h.ListLoanProducts)
		r.Get("/loan-products/{id}", h.GetLoanProduct)
		r.Get("/tax-rates", h.SearchTaxRates)
		r.Get("/tax-rates/{zip}", h.LookupTaxRate)
		r.Post("/giveaways/claim", h.SubmitClaim)

		// Admin API (login + admin role required).
		r.Group(func(r chi.Router) {
			r.Use(handlers.AuthMiddleware(authService, tokenService))
			r.Use(handlers.AdminMiddleware)

			r.Get("/me", h.Me)

			r.Post("/loan-products", h.CreateLoanProduct)
			r.Put("/loan-products/{id}", h.UpdateLoanProduct)
			r.Delete("/loan-products/{id}", h.DeleteLoanProduct)
			r.Put("/loan-products/reorder", h.ReorderLoanProducts)

			r.Get("/loan-page-widgets", h.ListLoanPageWidgets)
			r.Post("/loan-page-widgets", h.CreateLoanPageWidget)
			r.Put("/loan-page-widgets/{id}", h.UpdateLoanPageWidget)
			r.Delete("/loan-page-widgets/{id}", h.DeleteLoanPageWidget)
			r.Put("/loan-page-widgets/reorder", h.ReorderLoanPageWidgets)

			r.Get("/loan-page-settings", h.GetLoanPageSettings)
			r.Put("/loan-page-settings", h.PutLoanPageSettings)

			r.Get("/settings/{name}", h.GetSetting)
			r.Put("/settings/{name}", h.PutSetting)

			r.Post("/media", h.UploadMedia)
			r.Get("/media", h.ListMedia)
			r.Patch("/media/{id}", h.PatchMedia)
			r.Delete("/media/{id}", h.DeleteMedia)

			r.Get("/giveaways", h.ListGiveaways)
			r.Post("/giveaways", h.CreateGiveaway)
			r.Get("/giveaways/{id}", h.GetGiveaway)
			r.Put("/giveaways/{id}", h.UpdateGiveaway)
			r.Delete("/giveaways/{id}", h.DeleteGiveaway)
			r.Get("/giveaways/{id}/winners", h.ListWinners)
			r.Post("/giveaways/{id}/winners", h.CreateWinner)
			r.Patch("/giveaways/winners/{id}", h.PatchWinner)
			r.Patch("/giveaways/claims/{id}", h.PatchClaim)
		})
	})

	// Start server.
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Portal server starting on %s (env: %s)", addr, cfg.Server.Env)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
