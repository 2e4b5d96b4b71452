package deck

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParseDecks decodes a JSON deck array. Validation and split-card
// normalization happen on corpus load, not here.
func ParseDecks(data []byte) ([]Deck, error) {
	var decks []Deck
	if err := json.Unmarshal(data, &decks); err != nil {
		return nil, fmt.Errorf("parse decks: %w", err)
	}
	return decks, nil
}

// LoadFile reads a JSON deck file from disk.
func LoadFile(path string) ([]Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decks, err := ParseDecks(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decks, nil
}
