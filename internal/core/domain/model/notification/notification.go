// Package notification holds the in-app notification record, the web push
// subscription entity and the message templates they share.
package notification

import (
	"errors"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrMessageIsRequired            = errs.NewValueIsRequiredError("message")
	ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification or RestoreNotification constructor")
)

// Notification is one in-app feed entry for one recipient. It is only ever
// created by the notification writer and only its read flag changes later.
type Notification struct {
	id          kernel.UUID
	eventID     kernel.UUID
	tenantID    kernel.UUID
	recipientID kernel.UUID
	eventType   event.Kind
	shipmentID  *kernel.UUID
	manifestID  *kernel.UUID
	trackingID  string
	message     string
	read        bool
	createdAt   time.Time
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

// NewNotification builds an unread entry for recipient about e. The event id
// stays on the row: one event yields at most one entry per recipient.
func NewNotification(id kernel.UUID, tenantID, recipientID kernel.UUID, e event.Event, message string, now time.Time) (*Notification, error) {
	return RestoreNotification(id, e.ID, tenantID, recipientID, e.Kind, e.ShipmentID, e.ManifestID,
		e.TrackingID, message, false, now, now)
}

func RestoreNotification(
	id kernel.UUID,
	eventID kernel.UUID,
	tenantID kernel.UUID,
	recipientID kernel.UUID,
	eventType event.Kind,
	shipmentID *kernel.UUID,
	manifestID *kernel.UUID,
	trackingID string,
	message string,
	read bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*Notification, error) {
	var msgErr error
	if strings.TrimSpace(message) == "" {
		msgErr = ErrMessageIsRequired
	}
	if err := errors.Join(
		id.Validate(),
		eventID.Validate(),
		tenantID.Validate(),
		recipientID.Validate(),
		eventType.Validate(),
		msgErr,
	); err != nil {
		return nil, err
	}

	return &Notification{
		id:          id,
		eventID:     eventID,
		tenantID:    tenantID,
		recipientID: recipientID,
		eventType:   eventType,
		shipmentID:  shipmentID,
		manifestID:  manifestID,
		trackingID:  trackingID,
		message:     message,
		read:        read,
		createdAt:   createdAt.UTC(),
		updatedAt:   updatedAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID          { return n.id }
func (n *Notification) EventID() kernel.UUID     { return n.eventID }
func (n *Notification) TenantID() kernel.UUID    { return n.tenantID }
func (n *Notification) RecipientID() kernel.UUID { return n.recipientID }
func (n *Notification) EventType() event.Kind    { return n.eventType }
func (n *Notification) ShipmentID() *kernel.UUID { return n.shipmentID }
func (n *Notification) ManifestID() *kernel.UUID { return n.manifestID }
func (n *Notification) TrackingID() string       { return n.trackingID }
func (n *Notification) Message() string          { return n.message }
func (n *Notification) IsRead() bool             { return n.read }
func (n *Notification) CreatedAt() time.Time     { return n.createdAt }
func (n *Notification) UpdatedAt() time.Time     { return n.updatedAt }
