// Package shipmentrepo persists shipment aggregates and their status history.
package shipmentrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO is the row of the shipments table.
type ShipmentDTO struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TrackingID        string           `gorm:"type:varchar(64);not null;uniqueIndex"`
	OriginBranch      uuid.UUID        `gorm:"type:uuid;not null;index"`
	DestinationBranch uuid.UUID        `gorm:"type:uuid;not null;index"`
	CurrentBranch     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status            string           `gorm:"type:varchar(32);not null;index"`
	AssignedStaff     *uuid.UUID       `gorm:"type:uuid;index"`
	FailureReason     string           `gorm:"type:text;not null;default:''"`
	DeliveryProof     string           `gorm:"type:text;not null;default:''"`
	CreatedBy         uuid.UUID        `gorm:"type:uuid;not null"`
	Version           int              `gorm:"type:int;not null;default:0"`
	CreatedAt         time.Time        `gorm:"not null"`
	UpdatedAt         time.Time        `gorm:"not null"`
	History           []StatusEntryDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// StatusEntryDTO is one row of the append-only shipment_status_history table.
// The serial id breaks ties between entries sharing a timestamp.
type StatusEntryDTO struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	ShipmentID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status     string     `gorm:"type:varchar(32);not null"`
	Note       string     `gorm:"type:text;not null;default:''"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	OccurredAt time.Time  `gorm:"not null"`
}

func (StatusEntryDTO) TableName() string {
	return "shipment_status_history"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:                s.ID().Bytes(),
		TrackingID:        s.TrackingID(),
		OriginBranch:      s.OriginBranch().Bytes(),
		DestinationBranch: s.DestinationBranch().Bytes(),
		CurrentBranch:     s.CurrentBranch().Bytes(),
		Status:            s.Status().String(),
		AssignedStaff:     optionalBytes(s.AssignedStaff()),
		FailureReason:     s.FailureReason(),
		DeliveryProof:     s.DeliveryProof(),
		CreatedBy:         s.CreatedBy().Bytes(),
		Version:           s.Version(),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
	}
}

// historyFromDomain converts newest-first entries into rows ordered oldest
// first, so serial ids grow with time.
func historyFromDomain(shipmentID kernel.UUID, entries []shipment.StatusEntry) []StatusEntryDTO {
	rows := make([]StatusEntryDTO, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		rows = append(rows, StatusEntryDTO{
			ShipmentID: shipmentID.Bytes(),
			Status:     e.Status().String(),
			Note:       e.Note(),
			ActorID:    optionalBytes(e.ActorID()),
			OccurredAt: e.Timestamp(),
		})
	}
	return rows
}

// toDomain expects dto.History newest first.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	status, err := shipment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	history := make([]shipment.StatusEntry, 0, len(dto.History))
	for _, row := range dto.History {
		entry, entryErr := entryToDomain(row)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	ids := make([]kernel.UUID, 0, 5)
	for _, raw := range []uuid.UUID{dto.ID, dto.OriginBranch, dto.DestinationBranch, dto.CurrentBranch, dto.CreatedBy} {
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	assigned, err := optionalUUID(dto.AssignedStaff)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(shipment.Snapshot{
		ID:                ids[0],
		TrackingID:        dto.TrackingID,
		OriginBranch:      ids[1],
		DestinationBranch: ids[2],
		CurrentBranch:     ids[3],
		Status:            status,
		History:           history,
		AssignedStaff:     assigned,
		FailureReason:     dto.FailureReason,
		DeliveryProof:     dto.DeliveryProof,
		CreatedBy:         ids[4],
		Version:           dto.Version,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}

func entryToDomain(row StatusEntryDTO) (shipment.StatusEntry, error) {
	status, err := shipment.StatusFromString(row.Status)
	if err != nil {
		return shipment.StatusEntry{}, err
	}
	actorID, err := optionalUUID(row.ActorID)
	if err != nil {
		return shipment.StatusEntry{}, err
	}
	return shipment.NewStatusEntry(status, row.OccurredAt, row.Note, actorID)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
