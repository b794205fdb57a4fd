package http

import (
	"time"

	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/notification"
)

type NewShipmentRequest struct {
	TrackingID        string `json:"trackingId" example:"PKG-2026-000123"`
	DestinationBranch string `json:"destinationBranch" format:"uuid"`
}

type CreatedResponse struct {
	ID string `json:"id" format:"uuid"`
}

type TransitionRequest struct {
	Status        string  `json:"status" example:"Assigned"`
	Note          string  `json:"note,omitempty"`
	FailureReason string  `json:"failureReason,omitempty"`
	Proof         string  `json:"proof,omitempty"`
	AssigneeID    *string `json:"assigneeId,omitempty" format:"uuid"`
}

type StatusEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
	ActorID   *string   `json:"actorId,omitempty"`
}

type Shipment struct {
	ID                string        `json:"id"`
	TrackingID        string        `json:"trackingId"`
	OriginBranch      string        `json:"originBranch"`
	DestinationBranch string        `json:"destinationBranch"`
	CurrentBranch     string        `json:"currentBranch"`
	Status            string        `json:"status"`
	AssignedStaff     *string       `json:"assignedStaff,omitempty"`
	FailureReason     string        `json:"failureReason,omitempty"`
	DeliveryProof     string        `json:"deliveryProof,omitempty"`
	CreatedBy         string        `json:"createdBy"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
	StatusHistory     []StatusEntry `json:"statusHistory"`
}

type ShipmentSummary struct {
	ID                string  `json:"id"`
	TrackingID        string  `json:"trackingId"`
	DestinationBranch string  `json:"destinationBranch"`
	Status            string  `json:"status"`
	AssignedStaff     *string `json:"assignedStaff,omitempty"`
}

type NewManifestRequest struct {
	ToBranch      string   `json:"toBranch" format:"uuid"`
	ShipmentIDs   []string `json:"shipmentIds"`
	VehicleNumber string   `json:"vehicleNumber,omitempty"`
	DriverName    string   `json:"driverName,omitempty"`
}

type Manifest struct {
	ID            string     `json:"id"`
	FromBranch    string     `json:"fromBranch"`
	ToBranch      string     `json:"toBranch"`
	ShipmentIDs   []string   `json:"shipmentIds"`
	Status        string     `json:"status"`
	VehicleNumber string     `json:"vehicleNumber,omitempty"`
	DriverName    string     `json:"driverName,omitempty"`
	DispatchedAt  time.Time  `json:"dispatchedAt"`
	ReceivedAt    *time.Time `json:"receivedAt,omitempty"`
}

type Notification struct {
	ID         string    `json:"id"`
	EventType  string    `json:"eventType"`
	ShipmentID *string   `json:"shipmentId,omitempty"`
	ManifestID *string   `json:"manifestId,omitempty"`
	TrackingID string    `json:"trackingId"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkReadRequest struct {
	// IDs to mark; empty marks every unread notification.
	IDs []string `json:"ids,omitempty"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

type PushSubscriptionRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		Auth   string `json:"auth"`
		P256dh string `json:"p256dh"`
	} `json:"keys"`
}

type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

func optionalString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toShipment(r *queries.ShipmentResponse) Shipment {
	out := Shipment{
		ID:                r.ID.String(),
		TrackingID:        r.TrackingID,
		OriginBranch:      r.OriginBranch.String(),
		DestinationBranch: r.DestinationBranch.String(),
		CurrentBranch:     r.CurrentBranch.String(),
		Status:            r.Status,
		AssignedStaff:     optionalString(r.AssignedStaff),
		FailureReason:     r.FailureReason,
		DeliveryProof:     r.DeliveryProof,
		CreatedBy:         r.CreatedBy.String(),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		StatusHistory:     make([]StatusEntry, 0, len(r.History)),
	}
	for _, h := range r.History {
		out.StatusHistory = append(out.StatusHistory, StatusEntry{
			Status:    h.Status,
			Timestamp: h.Timestamp,
			Note:      h.Note,
			ActorID:   optionalString(h.ActorID),
		})
	}
	return out
}

func toShipmentSummaries(rows []queries.ShipmentSummary) []ShipmentSummary {
	out := make([]ShipmentSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, ShipmentSummary{
			ID:                r.ID.String(),
			TrackingID:        r.TrackingID,
			DestinationBranch: r.DestinationBranch.String(),
			Status:            r.Status,
			AssignedStaff:     optionalString(r.AssignedStaff),
		})
	}
	return out
}

func toManifest(m *manifest.Manifest) Manifest {
	ids := m.ShipmentIDs()
	out := Manifest{
		ID:            m.ID().String(),
		FromBranch:    m.FromBranch().String(),
		ToBranch:      m.ToBranch().String(),
		ShipmentIDs:   make([]string, 0, len(ids)),
		Status:        m.Status().String(),
		VehicleNumber: m.Meta().VehicleNumber,
		DriverName:    m.Meta().DriverName,
		DispatchedAt:  m.DispatchedAt(),
		ReceivedAt:    m.ReceivedAt(),
	}
	for _, id := range ids {
		out.ShipmentIDs = append(out.ShipmentIDs, id.String())
	}
	return out
}

func toNotifications(ns []*notification.Notification) []Notification {
	out := make([]Notification, 0, len(ns))
	for _, n := range ns {
		out = append(out, Notification{
			ID:         n.ID().String(),
			EventType:  n.EventType().String(),
			ShipmentID: optionalString(n.ShipmentID()),
			ManifestID: optionalString(n.ManifestID()),
			TrackingID: n.TrackingID(),
			Message:    n.Message(),
			IsRead:     n.IsRead(),
			CreatedAt:  n.CreatedAt(),
		})
	}
	return out
}
