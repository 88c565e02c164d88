package models

import (
	"strings"
	"time"
)

// Game is one of the tracked lottery products
type Game string

const (
	GamePick3 Game = "Pick 3"
	GamePick4 Game = "Pick 4"
)

// Games lists the tracked games in display order
var Games = []Game{GamePick3, GamePick4}

// Status messages attached to every key of a MessagesMapping
const (
	MessageAvailable   = "Resultados Actualizados"
	MessageUnavailable = "N/A"
)

// Key builds the "<jurisdiction>-<game>" mapping key
func Key(jurisdiction string, game Game) string {
	return jurisdiction + "-" + string(game)
}

// SplitKey is the inverse of Key. ok is false when the key does not end in a known game.
func SplitKey(key string) (jurisdiction string, game Game, ok bool) {
	for _, g := range Games {
		suffix := "-" + string(g)
		if strings.HasSuffix(key, suffix) && len(key) > len(suffix) {
			return strings.TrimSuffix(key, suffix), g, true
		}
	}
	return "", "", false
}

// ResultRecord is the displayed draw for one jurisdiction and game.
// Result is nil until a draw has posted; Date is nil whenever Result is nil.
type ResultRecord struct {
	Result *string `json:"result"`
	Date   *string `json:"date"`
}

// Available reports whether the record carries posted numbers
func (r ResultRecord) Available() bool {
	return r.Result != nil
}

// ResultsMapping maps Key(jurisdiction, game) to its record
type ResultsMapping map[string]ResultRecord

// MessagesMapping maps Key(jurisdiction, game) to a human readable status
type MessagesMapping map[string]string

// Snapshot is the read-only bundle handed to presentation consumers.
// Its maps are replaced whole on every successful sync and must never be mutated.
type Snapshot struct {
	Results        ResultsMapping  `json:"results"`
	Messages       MessagesMapping `json:"messages"`
	LastUpdateTime string          `json:"lastUpdateTime"`
	Error          string          `json:"error,omitempty"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
