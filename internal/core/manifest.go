package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	blobcore "cargocore/internal/blob/core"
)

// ManifestArchiver persists undock manifests to blob storage for audit
// retention, keyed by container and timestamp.
type ManifestArchiver struct {
	store blobcore.Store
}

// NewManifestArchiver wraps a blob store for manifest archiving.
func NewManifestArchiver(store blobcore.Store) *ManifestArchiver {
	return &ManifestArchiver{store: store}
}

// ArchiveManifest serializes manifest to JSON and stores it under
// manifests/<containerId>/<timestamp>.json. A failure here is non-fatal to
// the undock operation that triggered it; callers record it via metrics
// instead of failing the command.
func (a *ManifestArchiver) ArchiveManifest(ctx context.Context, manifest UndockManifest) error {
	if a == nil || a.store == nil {
		return nil
	}
	payload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	key := fmt.Sprintf("manifests/%s/%s.json", manifest.ContainerID, manifest.Timestamp.Format("20060102T150405Z"))
	_, err = a.store.Put(ctx, key, bytes.NewReader(payload), blobcore.PutOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("archive manifest: %w", err)
	}
	return nil
}
