// Package manifestrepo persists manifests. Shipment membership is stored as a
// text array so open manifests of a shipment batch can be found with a single
// array-overlap query.
package manifestrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ManifestDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	FromBranch    uuid.UUID      `gorm:"type:uuid;not null;index"`
	ToBranch      uuid.UUID      `gorm:"type:uuid;not null;index"`
	ShipmentIDs   pq.StringArray `gorm:"type:text[];not null"`
	Status        string         `gorm:"type:varchar(16);not null;index"`
	VehicleNumber string         `gorm:"type:varchar(64);not null"`
	DriverName    string         `gorm:"type:varchar(255);not null"`
	DispatchedAt  time.Time      `gorm:"not null"`
	ReceivedAt    *time.Time
	CreatedBy     uuid.UUID `gorm:"type:uuid;not null"`
	Version       int       `gorm:"type:int;not null;default:0"`
}

func (ManifestDTO) TableName() string {
	return "manifests"
}

func fromDomain(m *manifest.Manifest) ManifestDTO {
	return ManifestDTO{
		ID:            m.ID().Bytes(),
		FromBranch:    m.FromBranch().Bytes(),
		ToBranch:      m.ToBranch().Bytes(),
		ShipmentIDs:   idStrings(m.ShipmentIDs()),
		Status:        m.Status().String(),
		VehicleNumber: m.Meta().VehicleNumber,
		DriverName:    m.Meta().DriverName,
		DispatchedAt:  m.DispatchedAt(),
		ReceivedAt:    m.ReceivedAt(),
		CreatedBy:     m.CreatedBy().Bytes(),
		Version:       m.Version(),
	}
}

func toDomain(dto ManifestDTO) (*manifest.Manifest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	from, err := kernel.UUIDFromBytes(dto.FromBranch[:])
	if err != nil {
		return nil, err
	}
	to, err := kernel.UUIDFromBytes(dto.ToBranch[:])
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	shipmentIDs := make([]kernel.UUID, 0, len(dto.ShipmentIDs))
	for _, raw := range dto.ShipmentIDs {
		sid, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return nil, idErr
		}
		shipmentIDs = append(shipmentIDs, sid)
	}

	return manifest.RestoreManifest(
		id,
		from,
		to,
		shipmentIDs,
		manifest.Status(dto.Status),
		manifest.Meta{VehicleNumber: dto.VehicleNumber, DriverName: dto.DriverName},
		dto.DispatchedAt,
		dto.ReceivedAt,
		createdBy,
		dto.Version,
	)
}

func idStrings(ids []kernel.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
