package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/veilmoon/oracle/internal/middleware"
)

// Draw returns the subscriber's deterministic card for their local calendar
// day. Repeating the call within the same local day returns the same card.
func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.GetClaims(r)
	if !ok {
		h.jsonError(w, "Not authenticated.", http.StatusUnauthorized)
		return
	}

	// Timezone is optional; an absent or empty body means UTC.
	var req struct {
		Timezone string `json:"timezone"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}

	result := h.daily.Draw(claims.Email, timezone)

	h.writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"dateKey":   result.DateKey,
		"firstName": claims.FirstName,
		"card":      result.Card,
	})
}
