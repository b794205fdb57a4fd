package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

var ErrListBranchShipmentsQueryIsNotConstructed = errors.New(
	"ListBranchShipmentsQuery must be created via NewListBranchShipmentsQuery constructor",
)

// ListBranchShipmentsQuery lists the shipments currently held by a branch,
// optionally narrowed to one status.
type ListBranchShipmentsQuery struct {
	tenantID kernel.UUID
	status   shipment.Status
	limit    int
	offset   int

	guard guard.ConstructorGuard
}

// NewListBranchShipmentsQuery builds the query. status is shipment.Unknown for
// no filter; limit 0 picks the default page size.
func NewListBranchShipmentsQuery(tenantID kernel.UUID, status shipment.Status, limit, offset int) (ListBranchShipmentsQuery, error) {
	var statusErr error
	if status != shipment.Unknown {
		statusErr = status.Validate()
	}
	var pageErr error
	if limit < 0 || limit > maxPageSize {
		pageErr = errs.NewValueIsOutOfRangeError("limit", limit, 0, maxPageSize)
	} else if offset < 0 {
		pageErr = errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if err := errors.Join(tenantID.Validate(), statusErr, pageErr); err != nil {
		return ListBranchShipmentsQuery{}, err
	}
	if limit == 0 {
		limit = defaultPageSize
	}

	return ListBranchShipmentsQuery{
		tenantID: tenantID,
		status:   status,
		limit:    limit,
		offset:   offset,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListBranchShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListBranchShipmentsQueryIsNotConstructed)
}

// ShipmentSummary is a row of the branch shipment list.
type ShipmentSummary struct {
	ID                kernel.UUID
	TrackingID        string
	DestinationBranch kernel.UUID
	Status            string
	AssignedStaff     *kernel.UUID
}
