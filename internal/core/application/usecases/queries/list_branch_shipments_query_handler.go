package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListBranchShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListBranchShipmentsQueryHandler(db *gorm.DB) ListBranchShipmentsQueryHandler {
	return ListBranchShipmentsQueryHandler{db: db}
}

// Handle returns the page ordered by last change, most recent first.
func (h ListBranchShipmentsQueryHandler) Handle(ctx context.Context, query ListBranchShipmentsQuery) ([]ShipmentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).
		Table("shipments").
		Select("id, tracking_id, destination_branch, status, assigned_staff").
		Where("current_branch = ?", query.tenantID.Bytes())
	if query.status != shipment.Unknown {
		stmt = stmt.Where("status = ?", query.status.String())
	}

	rows, err := stmt.Order("updated_at DESC, id").Limit(query.limit).Offset(query.offset).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]ShipmentSummary, 0)
	for rows.Next() {
		var summary ShipmentSummary
		var id, destination uuid.UUID
		var assigned uuid.NullUUID

		err = rows.Scan(
			&id,
			&summary.TrackingID,
			&destination,
			&summary.Status,
			&assigned,
		)
		if err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.DestinationBranch, err = kernel.UUIDFromBytes(destination[:]); err != nil {
			return nil, err
		}
		if summary.AssignedStaff, err = nullableUUID(assigned); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}
