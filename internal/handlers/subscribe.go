package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/veilmoon/oracle/internal/models"
	"github.com/veilmoon/oracle/internal/services/mailer"
	"github.com/veilmoon/oracle/internal/services/session"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Subscribe validates the signup, upserts the contact on the mailing list,
// and issues the session cookie.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		FirstName string `json:"firstName"`
		Email     string `json:"email"`
		Consent   bool   `json:"consent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	firstName := strings.TrimSpace(req.FirstName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if utf8.RuneCountInString(firstName) < 2 {
		h.jsonError(w, "Please enter your first name.", http.StatusBadRequest)
		return
	}
	if !emailPattern.MatchString(email) {
		h.jsonError(w, "Please enter a valid email.", http.StatusBadRequest)
		return
	}
	if !req.Consent {
		h.jsonError(w, "Subscription consent is required to continue.", http.StatusBadRequest)
		return
	}

	err := h.mailer.Subscribe(r.Context(), mailer.SubscribeInput{
		Email:     email,
		FirstName: firstName,
		Consent:   true,
	})
	if err != nil {
		h.logger.Error("mailing list upsert failed", zap.Error(err))
		h.jsonError(w, "Subscription failed.", http.StatusInternalServerError)
		return
	}

	token, err := h.codec.Sign(models.SessionClaims{
		Email:        email,
		FirstName:    firstName,
		SubscribedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Error("session token signing failed", zap.Error(err))
		h.jsonError(w, "Subscription failed.", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
