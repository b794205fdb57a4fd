package shipment

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

// StatusEntry is one immutable line of a shipment's audit history.
type StatusEntry struct {
	status    Status
	timestamp time.Time
	note      string
	actorID   *kernel.UUID
}

// NewStatusEntry builds a history entry. actorID is nil for system-driven entries.
func NewStatusEntry(status Status, timestamp time.Time, note string, actorID *kernel.UUID) (StatusEntry, error) {
	var actorErr error
	if actorID != nil {
		actorErr = actorID.Validate()
	}
	var tsErr error
	if timestamp.IsZero() {
		tsErr = errs.NewValueIsRequiredError("timestamp")
	}
	if err := errors.Join(status.Validate(), tsErr, actorErr); err != nil {
		return StatusEntry{}, err
	}

	return StatusEntry{
		status:    status,
		timestamp: timestamp.UTC(),
		note:      note,
		actorID:   actorID,
	}, nil
}

func (e StatusEntry) Status() Status       { return e.status }
func (e StatusEntry) Timestamp() time.Time { return e.timestamp }
func (e StatusEntry) Note() string         { return e.note }

// ActorID returns the user who caused the entry, or nil.
func (e StatusEntry) ActorID() *kernel.UUID {
	if e.actorID == nil {
		return nil
	}
	id := *e.actorID
	return &id
}
