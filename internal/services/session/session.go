// Package session signs and verifies the stateless subscriber session token.
//
// A token is "payload.signature": the payload is the unpadded URL-safe
// base64 of the JSON claims, the signature an HMAC-SHA-256 over the payload
// segment under a process-wide secret. Nothing is stored server-side; the
// cookie is the sole holder. Changing the secret invalidates every issued
// token.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/veilmoon/oracle/internal/models"
)

// CookieName is the cookie that carries the signed token.
const CookieName = "oracle_session"

// CookieMaxAge is how long issued cookies stay live.
const CookieMaxAge = 14 * 24 * time.Hour

// ErrInvalidSession is returned for every verification failure, regardless
// of cause. Callers cannot distinguish why a token was rejected.
var ErrInvalidSession = errors.New("invalid session")

// Codec signs and verifies session tokens.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec bound to the server secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Sign serializes the claims into a compact, URL-safe, tamper-evident token.
func (c *Codec) Sign(claims models.SessionClaims) (string, error) {
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + c.signature(payload), nil
}

// Verify checks the token signature in constant time and returns the
// embedded claims. All required claims must be present.
func (c *Codec) Verify(token string) (models.SessionClaims, error) {
	payload, provided, ok := strings.Cut(token, ".")
	if !ok || payload == "" || provided == "" {
		return models.SessionClaims{}, ErrInvalidSession
	}

	expected := c.signature(payload)
	if len(provided) != len(expected) || !hmac.Equal([]byte(provided), []byte(expected)) {
		return models.SessionClaims{}, ErrInvalidSession
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return models.SessionClaims{}, ErrInvalidSession
	}

	var claims models.SessionClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return models.SessionClaims{}, ErrInvalidSession
	}
	if !claims.Valid() {
		return models.SessionClaims{}, ErrInvalidSession
	}
	return claims, nil
}

func (c *Codec) signature(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
