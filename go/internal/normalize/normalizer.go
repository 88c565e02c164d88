// Package normalize expands partial server responses into complete result mappings.
package normalize

import (
	"strings"
	"time"

	"github.com/mcdev12/lotterydash/go/clients/lottery_api_client"
	"github.com/mcdev12/lotterydash/go/internal/catalog"
	"github.com/mcdev12/lotterydash/go/internal/models"
)

// DisplayLayout is the layout of every normalized ResultRecord.Date
const DisplayLayout = "01/02/2006, 03:04:05 PM"

var serverLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Normalizer covers the catalog's jurisdiction x game cross product
type Normalizer struct {
	catalog *catalog.Catalog
}

func NewNormalizer(c *catalog.Catalog) *Normalizer {
	return &Normalizer{catalog: c}
}

// Normalize builds a complete mapping from resp. Jurisdictions or games the
// server omitted, and entries missing numbers or date, become {nil, nil}.
// The server's top-level date is carried verbatim as LastUpdateTime.
func (n *Normalizer) Normalize(resp *lottery_api_client.ResultsResponse) models.Snapshot {
	results := make(models.ResultsMapping, n.catalog.Len()*len(models.Games))

	for _, j := range n.catalog.Jurisdictions() {
		games := resp.Results[j.Slug]
		for _, game := range models.Games {
			results[models.Key(j.Slug, game)] = n.record(games[string(game)])
		}
	}

	return models.Snapshot{
		Results:        results,
		Messages:       n.Messages(results),
		LastUpdateTime: resp.Date,
	}
}

func (n *Normalizer) record(entry lottery_api_client.DrawEntry) models.ResultRecord {
	numbers := strings.TrimSpace(entry.Numbers)
	date := strings.TrimSpace(entry.Date)
	if numbers == "" || date == "" {
		return models.ResultRecord{}
	}

	formatted := n.FormatDate(date)
	return models.ResultRecord{Result: &numbers, Date: &formatted}
}

// FormatDate renders a server timestamp in the display timezone. Values
// already in display form, or in no known layout, are returned unchanged.
func (n *Normalizer) FormatDate(raw string) string {
	if strings.Contains(raw, "/") {
		return raw
	}
	for _, layout := range serverLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(n.catalog.Location()).Format(DisplayLayout)
		}
	}
	return raw
}

// Messages derives the status message of every key in results
func (n *Normalizer) Messages(results models.ResultsMapping) models.MessagesMapping {
	messages := make(models.MessagesMapping, len(results))
	for key, record := range results {
		if record.Available() {
			messages[key] = models.MessageAvailable
		} else {
			messages[key] = models.MessageUnavailable
		}
	}
	return messages
}

// Complete returns a copy of results restricted to the catalog, with every
// missing pair filled with {nil, nil}. A record without numbers loses its date.
func (n *Normalizer) Complete(results models.ResultsMapping) models.ResultsMapping {
	complete := make(models.ResultsMapping, n.catalog.Len()*len(models.Games))
	for _, j := range n.catalog.Jurisdictions() {
		for _, game := range models.Games {
			key := models.Key(j.Slug, game)
			record := results[key]
			if !record.Available() {
				record = models.ResultRecord{}
			}
			complete[key] = record
		}
	}
	return complete
}
