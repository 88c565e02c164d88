package cache

import (
	"context"
	"testing"

	"github.com/mcdev12/lotterydash/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleResults() models.ResultsMapping {
	return models.ResultsMapping{
		"texas-Pick 3": {Result: strPtr("123"), Date: strPtr("01/01/2024, 04:59:00 AM")},
		"texas-Pick 4": {},
	}
}

func TestResultCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewResultCache(NewMemoryStore())

	require.NoError(t, c.Save(ctx, sampleResults(), "2024-01-01T10:00:00Z"))

	results, lastUpdate := c.Load(ctx)
	assert.Equal(t, sampleResults(), results)
	assert.Equal(t, "2024-01-01T10:00:00Z", lastUpdate)
}

func TestResultCacheSaveReplacesWholeValue(t *testing.T) {
	ctx := context.Background()
	c := NewResultCache(NewMemoryStore())

	require.NoError(t, c.Save(ctx, sampleResults(), "first"))
	replacement := models.ResultsMapping{"ohio-Pick 4": {Result: strPtr("9876"), Date: strPtr("x")}}
	require.NoError(t, c.Save(ctx, replacement, "second"))

	results, lastUpdate := c.Load(ctx)
	assert.Equal(t, replacement, results)
	assert.Equal(t, "second", lastUpdate)
}

func TestResultCacheEmpty(t *testing.T) {
	results, lastUpdate := NewResultCache(NewMemoryStore()).Load(context.Background())

	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Empty(t, lastUpdate)
}

func TestResultCacheCorruptPayloads(t *testing.T) {
	cases := map[string]string{
		"not json":       `{{{`,
		"array":          `[1, 2]`,
		"null":           `null`,
		"unknown game":   `{"texas-Powerball": {"result": "1", "date": null}}`,
		"wrong types":    `{"texas-Pick 3": {"result": 123, "date": null}}`,
		"unknown field":  `{"texas-Pick 3": {"numbers": "123"}}`,
		"record not obj": `{"texas-Pick 3": "123"}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore()
			require.NoError(t, store.Put(ctx, ResultsKey, []byte(payload)))
			require.NoError(t, store.Put(ctx, LastUpdateTimeKey, []byte(`"2024-01-01T10:00:00Z"`)))

			var results models.ResultsMapping
			var lastUpdate string
			require.NotPanics(t, func() {
				results, lastUpdate = NewResultCache(store).Load(ctx)
			})
			assert.Empty(t, results)
			assert.Equal(t, "2024-01-01T10:00:00Z", lastUpdate)
		})
	}
}

func TestResultCacheCorruptLastUpdateTime(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewResultCache(store)
	require.NoError(t, c.Save(ctx, sampleResults(), "2024-01-01T10:00:00Z"))
	require.NoError(t, store.Put(ctx, LastUpdateTimeKey, []byte(`12`)))

	results, lastUpdate := c.Load(ctx)
	assert.Equal(t, sampleResults(), results)
	assert.Empty(t, lastUpdate)
}

func TestCacheErrorUnwraps(t *testing.T) {
	inner := assert.AnError
	err := &CacheError{Key: ResultsKey, Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), ResultsKey)
}
