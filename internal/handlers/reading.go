package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/veilmoon/oracle/internal/middleware"
	"github.com/veilmoon/oracle/internal/services/reading"
)

// GenerateReading returns a personalized reading for a drawn card. A failing
// or unconfigured text model degrades to the local fallback composition, so
// this path never surfaces a generation error.
func (h *Handler) GenerateReading(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.GetClaims(r)
	if !ok {
		h.jsonError(w, "Not authenticated.", http.StatusUnauthorized)
		return
	}

	var req struct {
		CardID   *int   `json:"cardId"`
		Timezone string `json:"timezone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}
	if req.CardID == nil {
		h.jsonError(w, "Missing cardId.", http.StatusBadRequest)
		return
	}

	card, found := h.catalog.GetByID(*req.CardID)
	if !found {
		h.jsonError(w, "Card not found.", http.StatusNotFound)
		return
	}

	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}

	astroCtx := h.astro.Context(timezone)
	result := h.reading.Generate(r.Context(), reading.Input{
		FirstName: claims.FirstName,
		Card:      card,
		Astro:     astroCtx,
	})

	h.writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"reading": result.Text,
		"astro":   astroCtx,
	})
}
