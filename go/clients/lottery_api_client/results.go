package lottery_api_client

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcdev12/lotterydash/go/clients"
	"github.com/tidwall/gjson"
)

// DrawEntry is one game's posted draw as reported by the server
type DrawEntry struct {
	Numbers string
	Date    string
}

// ResultsResponse is the parsed results envelope.
// Results maps jurisdiction to game name to entry; either level may be partial.
type ResultsResponse struct {
	Date    string
	Results map[string]map[string]DrawEntry
}

// GetResults fetches and parses the current results envelope
func (c *LotteryApiClient) GetResults(ctx context.Context) (*ResultsResponse, error) {
	body, err := c.Get(ctx, ResultsEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}

	response, err := ParseResults(body)
	if err != nil {
		return nil, &clients.ParseError{Endpoint: ResultsEndpoint, Err: err}
	}

	return response, nil
}

// ParseResults validates the envelope shape and extracts its entries.
// The top-level date must be a string and results must be an object; game
// entries that are not objects are ignored, numbers may be strings or JSON numbers.
func ParseResults(body []byte) (*ResultsResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("body is not valid JSON")
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.New("body is not a JSON object")
	}

	date := root.Get("date")
	if date.Type != gjson.String {
		return nil, errors.New(`missing or non-string "date" field`)
	}

	results := root.Get("results")
	if !results.IsObject() {
		return nil, errors.New(`missing or non-object "results" field`)
	}

	response := &ResultsResponse{
		Date:    date.String(),
		Results: make(map[string]map[string]DrawEntry),
	}

	results.ForEach(func(jurisdiction, games gjson.Result) bool {
		entries := make(map[string]DrawEntry)
		if games.IsObject() {
			games.ForEach(func(game, entry gjson.Result) bool {
				if !entry.IsObject() {
					return true
				}
				entries[game.String()] = DrawEntry{
					Numbers: scalarString(entry.Get("numbers")),
					Date:    scalarString(entry.Get("date")),
				}
				return true
			})
		}
		response.Results[jurisdiction.String()] = entries
		return true
	})

	return response, nil
}

func scalarString(value gjson.Result) string {
	switch value.Type {
	case gjson.String:
		return value.Str
	case gjson.Number:
		return value.Raw
	default:
		return ""
	}
}
