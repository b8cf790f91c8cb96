package catalog

import _ "embed"

//go:embed oracle_cards.json
var cardData []byte
