package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cargocore/internal/core"
	"cargocore/internal/infra/persistence/memory"
	"cargocore/internal/infra/persistence/postgres"
	"cargocore/internal/infra/persistence/sqlite"
)

// session bundles a Service with the store it sits atop, so commands can
// run one operation against the selected backend and persist the result.
// Only the memory backend round-trips through a JSON file between
// invocations; sqlite and postgres persist on every commit themselves.
type session struct {
	memStore *memory.Store
	svc      *core.Service
}

func openSession() (*session, error) {
	blobStore, err := openBlobStore()
	if err != nil {
		return nil, err
	}
	archiver := core.NewManifestArchiver(blobStore)

	switch backend {
	case "", "memory":
		store := memory.NewStore(core.NewDefaultRulesEngine())
		if data, err := os.ReadFile(statePath); err == nil {
			var snap memory.Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				return nil, err
			}
			store.ImportState(snap)
		} else if !os.IsNotExist(err) {
			return nil, err
		}
		return &session{memStore: store, svc: core.NewService(store, core.DefaultConfig(), nil, archiver)}, nil

	case "sqlite":
		path := dsn
		if path == "" {
			path = "cargocore.db"
		}
		store, err := sqlite.NewStore(path, core.NewDefaultRulesEngine())
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return &session{svc: core.NewService(store, core.DefaultConfig(), nil, archiver)}, nil

	case "postgres":
		store, err := postgres.NewStore(dsn, core.NewDefaultRulesEngine())
		if err != nil {
			return nil, fmt.Errorf("open postgres backend: %w", err)
		}
		return &session{svc: core.NewService(store, core.DefaultConfig(), nil, archiver)}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q (want memory, sqlite, or postgres)", backend)
	}
}

// save persists the memory backend's snapshot to statePath. sqlite and
// postgres sessions are no-ops here since they persist on every commit.
func (s *session) save() error {
	if s.memStore == nil {
		return nil
	}
	data, err := json.MarshalIndent(s.memStore.ExportState(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(statePath, data, 0o644)
}

var backgroundCtx = context.Background()
