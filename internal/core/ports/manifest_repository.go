package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
)

type ManifestRepository interface {
	Add(ctx context.Context, aggregate *manifest.Manifest) error

	// Update fails with an errs.ConflictError on a stale version.
	Update(ctx context.Context, aggregate *manifest.Manifest) error

	// Get retrieves and row-locks a manifest for the rest of the transaction.
	Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error)

	// OpenManifestsOf maps each of the given shipments that is part of an
	// InTransit manifest to that manifest's id.
	OpenManifestsOf(ctx context.Context, shipmentIDs []kernel.UUID) (map[kernel.UUID]kernel.UUID, error)
}
