package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcdev12/lotterydash/go/internal/models"
	"github.com/rs/zerolog/log"
)

// Keys under which the results and the server update time are persisted
const (
	ResultsKey        = "lottery-results"
	LastUpdateTimeKey = "last-update-time"
)

// CacheError reports a persisted value that could not be decoded. It is
// logged and swallowed by ResultCache.Load, never returned to callers.
type CacheError struct {
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache entry %s: %v", e.Key, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

// ResultCache mirrors the last successful results into a Store
type ResultCache struct {
	store Store
}

func NewResultCache(store Store) *ResultCache {
	return &ResultCache{store: store}
}

// Load returns the persisted mapping and update time. Absent, unreadable or
// corrupt entries degrade to an empty mapping and an empty time.
func (c *ResultCache) Load(ctx context.Context) (models.ResultsMapping, string) {
	results := models.ResultsMapping{}
	lastUpdate := ""

	if data, ok := c.read(ctx, ResultsKey); ok {
		decoded, err := decodeResults(data)
		if err != nil {
			c.discard(&CacheError{Key: ResultsKey, Err: err})
		} else {
			results = decoded
		}
	}

	if data, ok := c.read(ctx, LastUpdateTimeKey); ok {
		if err := json.Unmarshal(data, &lastUpdate); err != nil {
			lastUpdate = ""
			c.discard(&CacheError{Key: LastUpdateTimeKey, Err: err})
		}
	}

	return results, lastUpdate
}

// Save overwrites both entries
func (c *ResultCache) Save(ctx context.Context, results models.ResultsMapping, lastUpdate string) error {
	resultsData, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	lastUpdateData, err := json.Marshal(lastUpdate)
	if err != nil {
		return fmt.Errorf("failed to marshal last update time: %w", err)
	}

	if batch, ok := c.store.(BatchStore); ok {
		entries := []Entry{
			{Key: ResultsKey, Value: resultsData},
			{Key: LastUpdateTimeKey, Value: lastUpdateData},
		}
		if err := batch.PutAll(ctx, entries); err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		return nil
	}

	if err := c.store.Put(ctx, ResultsKey, resultsData); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	if err := c.store.Put(ctx, LastUpdateTimeKey, lastUpdateData); err != nil {
		return fmt.Errorf("failed to save last update time: %w", err)
	}
	return nil
}

func (c *ResultCache) read(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read cache entry")
		return nil, false
	}
	return data, true
}

func (c *ResultCache) discard(err *CacheError) {
	log.Warn().Err(err).Str("key", err.Key).Msg("discarding corrupt cache entry")
}

// decodeResults accepts only an object of {"result", "date"} records whose
// keys name a known game
func decodeResults(data []byte) (models.ResultsMapping, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("results is null")
	}

	results := make(models.ResultsMapping, len(raw))
	for key, value := range raw {
		if _, _, ok := models.SplitKey(key); !ok {
			return nil, fmt.Errorf("invalid key %q", key)
		}

		dec := json.NewDecoder(bytes.NewReader(value))
		dec.DisallowUnknownFields()
		var record models.ResultRecord
		if err := dec.Decode(&record); err != nil {
			return nil, fmt.Errorf("record %q: %w", key, err)
		}
		results[key] = record
	}
	return results, nil
}
