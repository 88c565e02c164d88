package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendNATS     = "nats"
)

// Config selects and configures a Store backend
type Config struct {
	Backend       string
	Dir           string
	SQLitePath    string
	PostgresDSN   string
	MongoURI      string
	MongoDatabase string
	NATSURL       string
	NATSBucket    string
}

// Open connects the configured backend
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(cfg.Dir)
	case BackendSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case BackendPostgres:
		return OpenPostgres(ctx, cfg.PostgresDSN)
	case BackendMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case BackendNATS:
		return OpenNATS(ctx, cfg.NATSURL, cfg.NATSBucket)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
