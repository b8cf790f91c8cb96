// Package models defines core domain types
package models

// RelatedEnergies groups the energetic correspondences of a card.
type RelatedEnergies struct {
	Chakra string `json:"chakra"`
	Planet string `json:"planet"`
	Sign   string `json:"sign"`
}

// OracleCard is one immutable entry of the card catalog. Ids are unique and
// stable across runs; content changes require a redeploy.
type OracleCard struct {
	ID              int             `json:"id"`
	Title           string          `json:"title"`
	Image           string          `json:"image"`
	Description     string          `json:"description"`
	ReadingNotes    string          `json:"readingNotes"`
	Questions       []string        `json:"questions"`
	RelatedEnergies RelatedEnergies `json:"relatedEnergies"`
	Quote           string          `json:"quote"`
}

// DrawResult pairs a drawn card with the local calendar day it was drawn
// for. It is derived, never stored; recomputing with the same inputs on the
// same day yields the same result.
type DrawResult struct {
	Card    OracleCard `json:"card"`
	DateKey string     `json:"dateKey"`
}

// AstroContext captures the sky state used to color a reading.
type AstroContext struct {
	Timezone       string `json:"timezone"`
	LocalTimestamp string `json:"localTimestamp"`
	SunSign        string `json:"sunSign"`
	MoonSign       string `json:"moonSign"`
}
