// Package http exposes the parcelhub API over echo. Every route under
// /api/v1 runs behind the actor and rate limit middlewares; handlers turn
// requests into commands and queries and map domain errors to statuses.
//
//	@title			parcelhub API
//	@version		1.0
//	@description	Shipment tracking, manifests and notifications for a branch network.
//	@BasePath		/api/v1
package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"parcelhub/internal/core/application/notify"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/manifest"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
)

// Handlers groups the use cases the server calls.
type Handlers struct {
	CreateShipment     commands.CreateShipmentCommandHandler
	TransitionShipment commands.TransitionShipmentCommandHandler
	CreateManifest     commands.CreateManifestCommandHandler
	ReceiveManifest    commands.ReceiveManifestCommandHandler
	MarkRead           commands.MarkNotificationsReadCommandHandler
	SubscribePush      commands.SubscribePushCommandHandler
	UnsubscribePush    commands.UnsubscribePushCommandHandler

	GetShipment         queries.GetShipmentQueryHandler
	ListBranchShipments queries.ListBranchShipmentsQueryHandler
	NotificationFeed    *notify.Writer
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, log *slog.Logger) *Server {
	return &Server{h: h, logger: log.With("component", "http")}
}

// CreateShipment godoc
//
//	@Summary	Register a shipment at the caller's branch
//	@Tags		shipments
//	@Accept		json
//	@Produce	json
//	@Param		body	body		NewShipmentRequest	true	"shipment"
//	@Success	201		{object}	CreatedResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/shipments [post]
func (s *Server) CreateShipment(c echo.Context) error {
	var req NewShipmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	destination, err := kernel.UUIDFromString(req.DestinationBranch)
	if err != nil {
		return badRequest(c, "destinationBranch must be a UUID")
	}

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), actorOf(c), req.TrackingID, destination)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CreateShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: cmd.ShipmentID().String()})
}

// GetShipment godoc
//
//	@Summary	Get a shipment with its status history, newest first
//	@Tags		shipments
//	@Produce	json
//	@Param		id	path		string	true	"shipment id"	format(uuid)
//	@Success	200	{object}	Shipment
//	@Failure	404	{object}	ErrorResponse
//	@Router		/shipments/{id} [get]
func (s *Server) GetShipment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetShipmentQuery(id, actorOf(c).TenantID())
	if err != nil {
		return s.fail(c, err)
	}
	resp, err := s.h.GetShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toShipment(resp))
}

// ListShipments godoc
//
//	@Summary	List shipments currently at the caller's branch
//	@Tags		shipments
//	@Produce	json
//	@Param		status	query		string	false	"status filter"
//	@Param		limit	query		int		false	"page size"
//	@Param		offset	query		int		false	"page offset"
//	@Success	200		{array}		ShipmentSummary
//	@Failure	400		{object}	ErrorResponse
//	@Router		/shipments [get]
func (s *Server) ListShipments(c echo.Context) error {
	status := shipment.Unknown
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := shipment.StatusFromString(raw)
		if err != nil {
			return s.fail(c, err)
		}
		status = parsed
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return s.fail(c, err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListBranchShipmentsQuery(actorOf(c).TenantID(), status, limit, offset)
	if err != nil {
		return s.fail(c, err)
	}
	rows, err := s.h.ListBranchShipments.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toShipmentSummaries(rows))
}

// TransitionShipment godoc
//
//	@Summary	Move a shipment to its next delivery status
//	@Tags		shipments
//	@Accept		json
//	@Param		id		path	string				true	"shipment id"	format(uuid)
//	@Param		body	body	TransitionRequest	true	"transition"
//	@Success	204
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Router		/shipments/{id}/transitions [post]
func (s *Server) TransitionShipment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	target, err := shipment.StatusFromString(req.Status)
	if err != nil {
		return s.fail(c, err)
	}
	assignee, err := optionalUUID("assigneeId", req.AssigneeID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewTransitionShipmentCommand(id, actorOf(c), target, services.TransitionInput{
		Note:          req.Note,
		FailureReason: req.FailureReason,
		Proof:         req.Proof,
		AssigneeID:    assignee,
	})
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.TransitionShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateManifest godoc
//
//	@Summary	Dispatch shipments from the caller's branch on one manifest
//	@Tags		manifests
//	@Accept		json
//	@Produce	json
//	@Param		body	body		NewManifestRequest	true	"manifest"
//	@Success	201		{object}	Manifest
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/manifests [post]
func (s *Server) CreateManifest(c echo.Context) error {
	var req NewManifestRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	toBranch, err := kernel.UUIDFromString(req.ToBranch)
	if err != nil {
		return badRequest(c, "toBranch must be a UUID")
	}
	shipmentIDs, err := parseUUIDs("shipmentIds", req.ShipmentIDs)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateManifestCommand(kernel.NewUUID(), actorOf(c), toBranch, shipmentIDs, manifest.Meta{
		VehicleNumber: req.VehicleNumber,
		DriverName:    req.DriverName,
	})
	if err != nil {
		return s.fail(c, err)
	}
	m, err := s.h.CreateManifest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, toManifest(m))
}

// ReceiveManifest godoc
//
//	@Summary	Receive an in-transit manifest at the caller's branch
//	@Tags		manifests
//	@Produce	json
//	@Param		id	path		string	true	"manifest id"	format(uuid)
//	@Success	200	{object}	Manifest
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Router		/manifests/{id}/receive [post]
func (s *Server) ReceiveManifest(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReceiveManifestCommand(id, actorOf(c))
	if err != nil {
		return s.fail(c, err)
	}
	m, err := s.h.ReceiveManifest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toManifest(m))
}

// ListNotifications godoc
//
//	@Summary	The caller's notifications, newest first
//	@Tags		notifications
//	@Produce	json
//	@Param		read	query		bool	false	"read filter"
//	@Param		limit	query		int		false	"page size"
//	@Param		offset	query		int		false	"page offset"
//	@Success	200		{array}		Notification
//	@Router		/notifications [get]
func (s *Server) ListNotifications(c echo.Context) error {
	read, err := queryBool(c, "read")
	if err != nil {
		return s.fail(c, err)
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return s.fail(c, err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return s.fail(c, err)
	}

	actor := actorOf(c)
	feed, err := s.h.NotificationFeed.List(c.Request().Context(), actor.TenantID(), actor.UserID(),
		ports.NotificationFilter{Read: read, Limit: limit, Offset: offset})
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toNotifications(feed))
}

// CountUnreadNotifications godoc
//
//	@Summary	Number of unread notifications of the caller
//	@Tags		notifications
//	@Produce	json
//	@Success	200	{object}	UnreadCountResponse
//	@Router		/notifications/unread-count [get]
func (s *Server) CountUnreadNotifications(c echo.Context) error {
	actor := actorOf(c)
	count, err := s.h.NotificationFeed.CountUnread(c.Request().Context(), actor.TenantID(), actor.UserID())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

// MarkNotificationsRead godoc
//
//	@Summary	Mark notifications as read
//	@Tags		notifications
//	@Accept		json
//	@Produce	json
//	@Param		body	body		MarkReadRequest	false	"ids"
//	@Success	200		{object}	MarkReadResponse
//	@Router		/notifications/read [post]
func (s *Server) MarkNotificationsRead(c echo.Context) error {
	var req MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	ids, err := parseUUIDs("ids", req.IDs)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewMarkNotificationsReadCommand(actorOf(c), ids)
	if err != nil {
		return s.fail(c, err)
	}
	updated, err := s.h.MarkRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, MarkReadResponse{Updated: updated})
}

// SubscribePush godoc
//
//	@Summary	Register a web push subscription for the caller
//	@Tags		push
//	@Accept		json
//	@Param		body	body	PushSubscriptionRequest	true	"subscription"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Router		/push-subscriptions [post]
func (s *Server) SubscribePush(c echo.Context) error {
	var req PushSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewSubscribePushCommand(actorOf(c), req.Endpoint, req.Keys.Auth, req.Keys.P256dh)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.SubscribePush.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UnsubscribePush godoc
//
//	@Summary	Remove one of the caller's web push subscriptions
//	@Tags		push
//	@Accept		json
//	@Param		body	body	UnsubscribeRequest	true	"endpoint"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Router		/push-subscriptions [delete]
func (s *Server) UnsubscribePush(c echo.Context) error {
	var req UnsubscribeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewUnsubscribePushCommand(actorOf(c), req.Endpoint)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.UnsubscribePush.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
