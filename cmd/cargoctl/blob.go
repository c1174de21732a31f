package main

import (
	"fmt"

	blobcore "cargocore/internal/blob/core"
	"cargocore/internal/infra/blob/fs"
	"cargocore/internal/infra/blob/memory"
	"cargocore/internal/infra/blob/s3"
)

// openBlobStore selects the blob backend that undock manifests archive to,
// per --blob-backend: "fs" (default, rooted at --blob-path), "memory"
// (lost on process exit), or "s3" (configured entirely via the
// CARGOCORE_BLOB_S3_* environment variables read by s3.OpenFromEnv).
func openBlobStore() (blobcore.Store, error) {
	switch blobBackend {
	case "", "fs":
		path := blobPath
		if path == "" {
			path = "cargocore-manifests"
		}
		return fs.New(path)

	case "memory":
		return memory.New(), nil

	case "s3":
		store, err := s3.OpenFromEnv(backgroundCtx)
		if err != nil {
			return nil, fmt.Errorf("open s3 blob backend: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown blob backend %q (want fs, memory, or s3)", blobBackend)
	}
}
