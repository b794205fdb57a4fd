package notification

import (
	"fmt"

	"parcelhub/internal/core/domain/model/event"
)

// Message is the human-readable rendering of an event, shared by the in-app
// feed and push payloads.
type Message struct {
	Title string
	Body  string
	URL   string
}

type template struct {
	title string
	body  string // one %s verb, the tracking id
}

var templates = map[event.Kind]template{
	event.ShipmentCreated:    {"New shipment", "Shipment %s was registered at your branch."},
	event.ManifestCreated:    {"Manifest created", "Manifest %s was created."},
	event.ManifestDispatched: {"Manifest dispatched", "Manifest %s is on its way."},
	event.ManifestArrived:    {"Manifest arrived", "Manifest %s has arrived at its destination."},
	event.DeliveryAssigned:   {"Delivery assigned", "Shipment %s was assigned for delivery."},
	event.OutForDelivery:     {"Out for delivery", "Shipment %s is out for delivery."},
	event.Delivered:          {"Shipment delivered", "Shipment %s was delivered."},
	event.DeliveryFailed:     {"Delivery failed", "Delivery of shipment %s failed."},
}

// Render produces the message for an event. Title and body depend only on
// the event kind and tracking id.
func Render(e event.Event) Message {
	tpl, ok := templates[e.Kind]
	if !ok {
		tpl = template{title: "Shipment update", body: "Shipment %s was updated."}
	}

	msg := Message{
		Title: tpl.title,
		Body:  fmt.Sprintf(tpl.body, e.TrackingID),
	}
	switch {
	case e.ShipmentID != nil:
		msg.URL = "/shipments/" + e.ShipmentID.String()
	case e.ManifestID != nil:
		msg.URL = "/manifests/" + e.ManifestID.String()
	}
	return msg
}
