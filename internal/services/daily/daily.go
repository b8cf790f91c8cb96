// Package daily computes the deterministic daily card draw.
//
// A draw is a pure function of (normalized email, local calendar day, server
// secret): anyone repeating the call on the same local day gets the same
// card, and nobody without the secret can predict it.
package daily

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"time"

	"github.com/veilmoon/oracle/internal/catalog"
	"github.com/veilmoon/oracle/internal/models"
)

// Service draws one reproducible card per subscriber per local calendar day.
type Service struct {
	catalog *catalog.Catalog
	secret  string
	now     func() time.Time
}

// NewService creates a draw service over a fixed catalog.
func NewService(cat *catalog.Catalog, secret string) *Service {
	return &Service{catalog: cat, secret: secret, now: time.Now}
}

// DayKey returns the calendar date of the given instant as observed in the
// given IANA timezone, formatted "2006-01-02". Unknown or empty zones fall
// back to UTC. Two calls within the same local calendar day always yield the
// same key, including across DST transitions.
func DayKey(at time.Time, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil || loc == nil {
		loc = time.UTC
	}
	return at.In(loc).Format("2006-01-02")
}

// Index maps (user, day, secret) onto a catalog index in [0, size). The
// first four bytes of a SHA-256 digest over "user|day|secret" are read as a
// big-endian uint32 and reduced modulo size. The slight modulo bias for
// non-power-of-two sizes is part of the draw's contract: changing the
// reduction would change which card users see.
func Index(stableUserID, dateKey, secret string, size int) int {
	sum := sha256.Sum256([]byte(strings.ToLower(stableUserID) + "|" + dateKey + "|" + secret))
	return int(binary.BigEndian.Uint32(sum[:4]) % uint32(size))
}

// Draw returns the subscriber's card for their current local day.
func (s *Service) Draw(email, timezone string) models.DrawResult {
	dateKey := DayKey(s.now(), timezone)
	idx := Index(email, dateKey, s.secret, s.catalog.Size())
	return models.DrawResult{Card: s.catalog.Card(idx), DateKey: dateKey}
}
