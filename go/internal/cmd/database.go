package main

import (
	"context"
	"fmt"

	"github.com/mcdev12/lotterydash/go/internal/cache"
	"github.com/rs/zerolog/log"
)

func setupCacheStore(ctx context.Context, cfg Config) (cache.Store, error) {
	cacheCfg, err := cfg.cacheConfig()
	if err != nil {
		return nil, err
	}

	store, err := cache.Open(ctx, cacheCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s cache: %w", cacheCfg.Backend, err)
	}

	log.Info().Str("backend", cacheCfg.Backend).Msg("cache store ready")
	return store, nil
}
