package queries

import (
	"context"
	"database/sql"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler reads a shipment and its history with two queries.
//
// Example:
//
//	query, _ := NewGetShipmentQuery(shipmentID, actor.TenantID())
//	shipment, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return c.JSON(http.StatusNotFound, ...)
//	}
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (*ShipmentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var resp ShipmentResponse
	var id, origin, destination, current, createdBy uuid.UUID
	var assigned uuid.NullUUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_id,
			origin_branch,
			destination_branch,
			current_branch,
			status,
			assigned_staff,
			failure_reason,
			delivery_proof,
			created_by,
			created_at,
			updated_at
		FROM shipments
		WHERE id = ? AND (origin_branch = ? OR destination_branch = ?)
	`, query.shipmentID.Bytes(), query.tenantID.Bytes(), query.tenantID.Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.TrackingID,
		&origin,
		&destination,
		&current,
		&resp.Status,
		&assigned,
		&resp.FailureReason,
		&resp.DeliveryProof,
		&createdBy,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("shipment", query.shipmentID.String())
	}
	if err != nil {
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if resp.OriginBranch, err = kernel.UUIDFromBytes(origin[:]); err != nil {
		return nil, err
	}
	if resp.DestinationBranch, err = kernel.UUIDFromBytes(destination[:]); err != nil {
		return nil, err
	}
	if resp.CurrentBranch, err = kernel.UUIDFromBytes(current[:]); err != nil {
		return nil, err
	}
	if resp.CreatedBy, err = kernel.UUIDFromBytes(createdBy[:]); err != nil {
		return nil, err
	}
	if resp.AssignedStaff, err = nullableUUID(assigned); err != nil {
		return nil, err
	}

	if resp.History, err = h.history(ctx, id); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (h GetShipmentQueryHandler) history(ctx context.Context, shipmentID uuid.UUID) ([]StatusEntryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			occurred_at,
			note,
			actor_id
		FROM shipment_status_history
		WHERE shipment_id = ?
		ORDER BY occurred_at DESC, id DESC
	`, shipmentID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusEntryResponse, 0)
	for rows.Next() {
		var entry StatusEntryResponse
		var actor uuid.NullUUID

		if err = rows.Scan(&entry.Status, &entry.Timestamp, &entry.Note, &actor); err != nil {
			return nil, err
		}
		if entry.ActorID, err = nullableUUID(actor); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func nullableUUID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
