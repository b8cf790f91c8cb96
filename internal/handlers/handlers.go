// Package handlers provides HTTP request handlers
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/veilmoon/oracle/internal/catalog"
	"github.com/veilmoon/oracle/internal/config"
	"github.com/veilmoon/oracle/internal/services/astro"
	"github.com/veilmoon/oracle/internal/services/daily"
	"github.com/veilmoon/oracle/internal/services/mailer"
	"github.com/veilmoon/oracle/internal/services/reading"
	"github.com/veilmoon/oracle/internal/services/session"
)

// Handler contains all HTTP handlers and dependencies
type Handler struct {
	cfg     *config.Config
	logger  *zap.Logger
	catalog *catalog.Catalog
	codec   *session.Codec
	daily   *daily.Service
	astro   *astro.Service
	mailer  *mailer.Client
	reading *reading.Service
}

// New creates a new handler with all dependencies
func New(
	cfg *config.Config,
	logger *zap.Logger,
	cat *catalog.Catalog,
	codec *session.Codec,
	dailyService *daily.Service,
	astroService *astro.Service,
	mailerClient *mailer.Client,
	readingService *reading.Service,
) *Handler {
	return &Handler{
		cfg:     cfg,
		logger:  logger,
		catalog: cat,
		codec:   codec,
		daily:   dailyService,
		astro:   astroService,
		mailer:  mailerClient,
		reading: readingService,
	}
}

// writeJSON writes a JSON response with the given status
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("write response", zap.Error(err))
	}
}

// jsonError writes a JSON error response
func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
