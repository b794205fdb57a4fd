package manifestrepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormManifestRepository implements ports.ManifestRepository using GORM.
type GormManifestRepository struct {
	db *gorm.DB
}

func NewGormManifestRepository(db *gorm.DB) *GormManifestRepository {
	return &GormManifestRepository{db: db}
}

func (r *GormManifestRepository) Add(ctx context.Context, aggregate *manifest.Manifest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("manifest "+aggregate.ID().String(), "already exists")
		}
		return err
	}
	return nil
}

// Update persists the status change of a received manifest.
func (r *GormManifestRepository) Update(ctx context.Context, aggregate *manifest.Manifest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ManifestDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":      dto.Status,
			"received_at": dto.ReceivedAt,
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ManifestDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("manifest", aggregate.ID().String())
		}
		return errs.NewConflictError("manifest "+aggregate.ID().String(), "was modified concurrently")
	}
	return nil
}

// Get retrieves the manifest and holds its row lock until the transaction ends.
func (r *GormManifestRepository) Get(ctx context.Context, id kernel.UUID) (*manifest.Manifest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ManifestDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("manifest", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormManifestRepository) OpenManifestsOf(
	ctx context.Context,
	shipmentIDs []kernel.UUID,
) (map[kernel.UUID]kernel.UUID, error) {
	open := make(map[kernel.UUID]kernel.UUID)
	if len(shipmentIDs) == 0 {
		return open, nil
	}

	var dtos []ManifestDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND shipment_ids && ?::text[]", manifest.InTransit.String(), idStrings(shipmentIDs)).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	wanted := make(map[string]kernel.UUID, len(shipmentIDs))
	for _, id := range shipmentIDs {
		wanted[id.String()] = id
	}

	for _, dto := range dtos {
		manifestID, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		for _, raw := range dto.ShipmentIDs {
			if sid, ok := wanted[raw]; ok {
				open[sid] = manifestID
			}
		}
	}
	return open, nil
}
