package event

import (
	"encoding/json"
	"fmt"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
)

type wireEvent struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	TenantID        string    `json:"tenantId"`
	ShipmentID      string    `json:"shipmentId,omitempty"`
	ManifestID      string    `json:"manifestId,omitempty"`
	TrackingID      string    `json:"trackingId"`
	FromBranch      string    `json:"fromBranch,omitempty"`
	ToBranch        string    `json:"toBranch,omitempty"`
	AssignedStaffID string    `json:"assignedStaffId,omitempty"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// Encode serializes e for the outbox.
func Encode(e Event) ([]byte, error) {
	return json.Marshal(wireEvent{
		ID:              e.ID.String(),
		Kind:            string(e.Kind),
		TenantID:        e.TenantID.String(),
		ShipmentID:      optionalString(e.ShipmentID),
		ManifestID:      optionalString(e.ManifestID),
		TrackingID:      e.TrackingID,
		FromBranch:      optionalString(e.FromBranch),
		ToBranch:        optionalString(e.ToBranch),
		AssignedStaffID: optionalString(e.AssignedStaffID),
		Status:          e.Status,
		OccurredAt:      e.OccurredAt,
	})
}

// Decode parses an outbox payload and normalizes every identifier to kernel.UUID.
func Decode(payload []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(payload, &w); err != nil {
		return Event{}, fmt.Errorf("decode event payload: %w", err)
	}

	id, err := kernel.UUIDFromString(w.ID)
	if err != nil {
		return Event{}, fmt.Errorf("event id: %w", err)
	}
	tenantID, err := kernel.UUIDFromString(w.TenantID)
	if err != nil {
		return Event{}, fmt.Errorf("event tenantId: %w", err)
	}

	e := Event{
		ID:         id,
		Kind:       Kind(w.Kind),
		TenantID:   tenantID,
		TrackingID: w.TrackingID,
		Status:     w.Status,
		OccurredAt: w.OccurredAt.UTC(),
	}

	for _, f := range []struct {
		name string
		raw  string
		dst  **kernel.UUID
	}{
		{"shipmentId", w.ShipmentID, &e.ShipmentID},
		{"manifestId", w.ManifestID, &e.ManifestID},
		{"fromBranch", w.FromBranch, &e.FromBranch},
		{"toBranch", w.ToBranch, &e.ToBranch},
		{"assignedStaffId", w.AssignedStaffID, &e.AssignedStaffID},
	} {
		if *f.dst, err = optionalUUID(f.raw); err != nil {
			return Event{}, fmt.Errorf("event %s: %w", f.name, err)
		}
	}

	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

func optionalString(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func optionalUUID(raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil //nolint:nilnil // absent optional identifier
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
