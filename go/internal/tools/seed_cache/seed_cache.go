package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mcdev12/lotterydash/go/clients/lottery_api_client"
	"github.com/mcdev12/lotterydash/go/internal/cache"
	"github.com/mcdev12/lotterydash/go/internal/catalog"
	"github.com/mcdev12/lotterydash/go/internal/dbconfig"
	"github.com/mcdev12/lotterydash/go/internal/normalize"
)

// Seeds the postgres results cache from a saved results envelope so a fresh
// deployment starts with data before the first poll.
func main() {
	path := flag.String("file", "go/internal/assets/results.json", "results envelope JSON")
	catalogPath := flag.String("catalog", os.Getenv("CATALOG_PATH"), "optional jurisdiction catalog YAML")
	flag.Parse()

	// 1) Load the JSON snapshot
	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	resp, err := lottery_api_client.ParseResults(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse JSON: %v\n", err)
		os.Exit(1)
	}

	jurisdictions, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load catalog: %v\n", err)
		os.Exit(1)
	}
	snapshot := normalize.NewNormalizer(jurisdictions).Normalize(resp)

	// 2) Connect using shared dbconfig
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "database config: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	store, err := cache.OpenPostgres(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// 3) Overwrite both cache keys
	if err := cache.NewResultCache(store).Save(ctx, snapshot.Results, snapshot.LastUpdateTime); err != nil {
		fmt.Fprintf(os.Stderr, "save cache: %v\n", err)
		os.Exit(1)
	}

	// 4) Print summary
	available := 0
	for _, record := range snapshot.Results {
		if record.Available() {
			available++
		}
	}
	fmt.Printf(
		"Cache seed complete: %d entries, %d with results, server time %s\n",
		len(snapshot.Results), available, snapshot.LastUpdateTime,
	)
}
