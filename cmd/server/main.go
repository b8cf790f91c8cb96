// Veilmoon Daily Oracle
// Entry point for the web server
package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/veilmoon/oracle/internal/catalog"
	"github.com/veilmoon/oracle/internal/config"
	"github.com/veilmoon/oracle/internal/handlers"
	"github.com/veilmoon/oracle/internal/middleware"
	"github.com/veilmoon/oracle/internal/services/astro"
	"github.com/veilmoon/oracle/internal/services/daily"
	"github.com/veilmoon/oracle/internal/services/mailer"
	"github.com/veilmoon/oracle/internal/services/reading"
	"github.com/veilmoon/oracle/internal/services/session"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	// Load the card catalog once; it is read-only for the life of the process
	deck, err := catalog.LoadEmbedded()
	if err != nil {
		logger.Fatal("load card catalog", zap.Error(err))
	}

	// Initialize services
	codec := session.NewCodec(cfg.SessionSecret)
	dailyService := daily.NewService(deck, cfg.DrawSecret)
	astroService := astro.NewService()
	mailerClient := mailer.NewClient(mailer.Config{
		APIKey:     cfg.MailchimpAPIKey,
		AudienceID: cfg.MailchimpAudienceID,
		Tag:        cfg.MailchimpTag,
	})

	readingCfg := reading.DefaultConfig()
	readingCfg.APIKey = cfg.OpenAIAPIKey
	readingCfg.Model = cfg.OpenAIModel
	readingService := reading.NewService(readingCfg, logger)

	// Initialize handlers and session middleware
	h := handlers.New(cfg, logger, deck, codec, dailyService, astroService, mailerClient, readingService)
	authMiddleware := middleware.NewAuth(codec)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("/", h.Home)
	mux.HandleFunc("/api/subscribe", h.Subscribe)
	mux.HandleFunc(handlers.ImageRoutePrefix, h.Image)

	// Protected routes (require a verified session cookie)
	mux.Handle("/api/draw", authMiddleware.RequireSession(http.HandlerFunc(h.Draw)))
	mux.Handle("/api/generate-reading", authMiddleware.RequireSession(http.HandlerFunc(h.GenerateReading)))

	// Apply global middleware
	handler := middleware.Chain(
		mux,
		middleware.Recover(logger),
		middleware.SecurityHeaders,
		middleware.Logger(logger),
	)

	// Start server
	addr := ":" + cfg.Port
	logger.Info("oracle server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Environment),
		zap.String("system", deck.System()),
		zap.Int("cards", deck.Size()),
	)

	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
