// Package catalog holds the fixed oracle card deck, loaded once at startup
// and read-only for the life of the process.
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/veilmoon/oracle/internal/models"
)

// payload mirrors the card document layout.
type payload struct {
	System string              `json:"system"`
	Cards  []models.OracleCard `json:"cards"`
}

// Catalog is the immutable card deck, sorted ascending by id regardless of
// source-file order. It is safe to share across concurrent requests.
type Catalog struct {
	system string
	cards  []models.OracleCard
}

// Load parses a card document. The document must contain at least one card
// and card ids must be unique.
func Load(data []byte) (*Catalog, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse card data: %w", err)
	}
	if len(p.Cards) == 0 {
		return nil, fmt.Errorf("card data contains no cards")
	}

	cards := make([]models.OracleCard, len(p.Cards))
	copy(cards, p.Cards)
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })

	for i := 1; i < len(cards); i++ {
		if cards[i].ID == cards[i-1].ID {
			return nil, fmt.Errorf("duplicate card id %d", cards[i].ID)
		}
	}

	return &Catalog{system: p.System, cards: cards}, nil
}

// LoadEmbedded loads the compiled-in deck.
func LoadEmbedded() (*Catalog, error) {
	return Load(cardData)
}

// System returns the name of the oracle system.
func (c *Catalog) System() string { return c.system }

// Size returns the number of cards in the deck.
func (c *Catalog) Size() int { return len(c.cards) }

// Cards returns the deck in ascending id order. Callers must not modify the
// returned slice.
func (c *Catalog) Cards() []models.OracleCard { return c.cards }

// Card returns the card at a draw index.
func (c *Catalog) Card(index int) models.OracleCard { return c.cards[index] }

// GetByID returns the card with the given id, or false when absent.
func (c *Catalog) GetByID(id int) (models.OracleCard, bool) {
	for _, card := range c.cards {
		if card.ID == id {
			return card, true
		}
	}
	return models.OracleCard{}, false
}
