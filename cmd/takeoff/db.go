package main

import (
	"context"
	"fmt"
	"strings"

	"takeoff/internal/store"
	"takeoff/internal/store/postgres"
	"takeoff/internal/store/sqlite"
)

func openDB(ctx context.Context, dsn string) (store.Store, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.New(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database DSN: %s", dsn)
	}
}
