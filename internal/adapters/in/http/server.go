// Package http exposes the parcel lifecycle engine over an echo JSON API.
// Handlers translate between wire DTOs and application commands/queries; all
// business decisions stay behind the command handlers.
package http

import (
	"context"
	"errors"
	"net/http"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/route"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime/types"
)

// StatusCacheInvalidator drops a parcel's cached status after a lifecycle
// change. Best effort; a nil invalidator disables invalidation.
type StatusCacheInvalidator interface {
	Invalidate(ctx context.Context, parcelID kernel.UUID) error
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerParcelHandler       commands.RegisterParcelCommandHandler
	ingestScanEventHandler      commands.IngestScanEventCommandHandler
	assignRouteHandler          commands.AssignRouteCommandHandler
	deactivateAssignmentHandler commands.DeactivateAssignmentCommandHandler
	submitProofHandler          commands.SubmitProofCommandHandler
	createRouteHandler          commands.CreateRouteCommandHandler
	startRouteHandler           commands.StartRouteCommandHandler
	completeRouteHandler        commands.CompleteRouteCommandHandler
	cancelRouteHandler          commands.CancelRouteCommandHandler

	// Query handlers
	getParcelHandler           queries.GetParcelQueryHandler
	getScanEventsHandler       queries.GetScanEventsQueryHandler
	getActiveAssignmentHandler queries.GetActiveAssignmentQueryHandler

	cacheInvalidator StatusCacheInvalidator
}

// NewServer creates a new HTTP server with the required command and query
// handlers. cacheInvalidator may be nil.
func NewServer(
	registerParcelHandler commands.RegisterParcelCommandHandler,
	ingestScanEventHandler commands.IngestScanEventCommandHandler,
	assignRouteHandler commands.AssignRouteCommandHandler,
	deactivateAssignmentHandler commands.DeactivateAssignmentCommandHandler,
	submitProofHandler commands.SubmitProofCommandHandler,
	createRouteHandler commands.CreateRouteCommandHandler,
	startRouteHandler commands.StartRouteCommandHandler,
	completeRouteHandler commands.CompleteRouteCommandHandler,
	cancelRouteHandler commands.CancelRouteCommandHandler,
	getParcelHandler queries.GetParcelQueryHandler,
	getScanEventsHandler queries.GetScanEventsQueryHandler,
	getActiveAssignmentHandler queries.GetActiveAssignmentQueryHandler,
	cacheInvalidator StatusCacheInvalidator,
) *Server {
	return &Server{
		registerParcelHandler:       registerParcelHandler,
		ingestScanEventHandler:      ingestScanEventHandler,
		assignRouteHandler:          assignRouteHandler,
		deactivateAssignmentHandler: deactivateAssignmentHandler,
		submitProofHandler:          submitProofHandler,
		createRouteHandler:          createRouteHandler,
		startRouteHandler:           startRouteHandler,
		completeRouteHandler:        completeRouteHandler,
		cancelRouteHandler:          cancelRouteHandler,
		getParcelHandler:            getParcelHandler,
		getScanEventsHandler:        getScanEventsHandler,
		getActiveAssignmentHandler:  getActiveAssignmentHandler,
		cacheInvalidator:            cacheInvalidator,
	}
}

// RegisterRoutes binds all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/parcels", s.RegisterParcel)
	api.GET("/parcels/:parcelId", s.GetParcel)
	api.POST("/parcels/:parcelId/scan-events", s.IngestScanEvent)
	api.GET("/parcels/:parcelId/scan-events", s.GetScanEvents)
	api.POST("/parcels/:parcelId/assignments", s.AssignRoute)
	api.GET("/parcels/:parcelId/assignments/active", s.GetActiveAssignment)
	api.DELETE("/parcels/:parcelId/assignments/active", s.DeactivateAssignment)
	api.POST("/parcels/:parcelId/proof-of-delivery", s.SubmitProof)
	api.POST("/routes", s.CreateRoute)
	api.POST("/routes/:routeId/start", s.StartRoute)
	api.POST("/routes/:routeId/complete", s.CompleteRoute)
	api.POST("/routes/:routeId/cancel", s.CancelRoute)

	e.GET("/health", s.Health)
	e.GET("/openapi.json", s.GetOpenAPIDocument)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// RegisterParcel handles POST /api/v1/parcels - registers a new shipment.
func (s *Server) RegisterParcel(ctx echo.Context) error {
	var request RegisterParcelRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	senderID, err := kernel.UUIDFromString(request.SenderID)
	if err != nil {
		return badRequest(ctx, "Invalid sender_id")
	}
	recipientID, err := kernel.UUIDFromString(request.RecipientID)
	if err != nil {
		return badRequest(ctx, "Invalid recipient_id")
	}
	originHubID, err := kernel.UUIDFromString(request.OriginHubID)
	if err != nil {
		return badRequest(ctx, "Invalid origin_hub_id")
	}
	destinationHubID, err := kernel.UUIDFromString(request.DestinationHubID)
	if err != nil {
		return badRequest(ctx, "Invalid destination_hub_id")
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewRegisterParcelCommand(
		parcelID, senderID, recipientID, originHubID, destinationHubID,
		request.OriginZone, request.DestinationZone,
		request.WeightGrams, request.DeclaredValueCents, request.SlaDueAt)
	if err != nil {
		return badRequest(ctx, "Invalid parcel data: "+err.Error())
	}

	trackingCode, err := s.registerParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, commands.ErrUnknownHub) {
			return badRequest(ctx, "Unknown hub")
		}
		return internalError(ctx, "Failed to register parcel")
	}

	return ctx.JSON(http.StatusCreated, RegisterParcelResponse{
		ParcelID:     parcelID.String(),
		TrackingCode: trackingCode.String(),
	})
}

// GetParcel handles GET /api/v1/parcels/:parcelId.
func (s *Server) GetParcel(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	query, err := queries.NewGetParcelQuery(parcelID)
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	response, err := s.getParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Parcel not found")
		}
		return internalError(ctx, "Failed to retrieve parcel")
	}

	return ctx.JSON(http.StatusOK, ParcelResponse{
		ParcelID:     response.ID.String(),
		TrackingCode: response.TrackingCode,
		Status:       response.Status,
		CreatedAt:    response.CreatedAt,
		DeliveredAt:  response.DeliveredAt,
		SlaDueAt:     response.SlaDueAt,
	})
}

// IngestScanEvent handles POST /api/v1/parcels/:parcelId/scan-events.
// A rejected event is a 200 with accepted=false; the rejection reason is part
// of the audit trail, not a transport error.
func (s *Server) IngestScanEvent(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var request ScanEventRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	eventType, err := parcel.EventTypeFromString(request.EventType)
	if err != nil {
		return badRequest(ctx, "Unknown event_type")
	}

	hubID, err := optionalUUID(request.HubID)
	if err != nil {
		return badRequest(ctx, "Invalid hub_id")
	}
	courierID, err := optionalUUID(request.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier_id")
	}

	proof, err := inlineProofFromRequest(request.Proof)
	if err != nil {
		return badRequest(ctx, "Invalid proof: "+err.Error())
	}

	cmd, err := commands.NewIngestScanEventCommand(
		parcelID, eventType, request.EventTime, hubID, courierID, request.Notes, proof)
	if err != nil {
		return badRequest(ctx, "Invalid scan event: "+err.Error())
	}

	result, err := s.ingestScanEventHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUnknownParcel):
			return notFound(ctx, "Parcel not found")
		case errors.Is(err, commands.ErrUnknownHub):
			return badRequest(ctx, "Unknown hub")
		case errors.Is(err, commands.ErrUnknownCourier):
			return badRequest(ctx, "Unknown courier")
		case errors.Is(err, ports.ErrConcurrencyConflict):
			return conflict(ctx, "Concurrent modification, retry")
		}
		return internalError(ctx, "Failed to ingest scan event")
	}

	if result.Applied && s.cacheInvalidator != nil {
		_ = s.cacheInvalidator.Invalidate(ctx.Request().Context(), parcelID)
	}

	return ctx.JSON(http.StatusOK, ScanEventOutcomeResponse{
		Accepted: result.Accepted,
		Applied:  result.Applied,
		Status:   result.Status.String(),
		Reason:   string(result.Reason),
	})
}

// GetScanEvents handles GET /api/v1/parcels/:parcelId/scan-events - the full
// audit log, rejected events included.
func (s *Server) GetScanEvents(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	query, err := queries.NewGetScanEventsQuery(parcelID)
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	events, err := s.getScanEventsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve scan events")
	}

	response := make([]ScanEventResponse, len(events))
	for i, event := range events {
		response[i] = ScanEventResponse{
			EventID:    event.ID.String(),
			EventType:  event.EventType,
			EventTime:  event.EventTime,
			RecordedAt: event.RecordedAt,
			HubID:      uuidString(event.HubID),
			CourierID:  uuidString(event.CourierID),
			Notes:      event.Notes,
			Accepted:   event.Accepted,
			Applied:    event.Applied,
			Reason:     event.Reason,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignRoute handles POST /api/v1/parcels/:parcelId/assignments.
func (s *Server) AssignRoute(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var request AssignRouteRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	routeID, err := kernel.UUIDFromString(request.RouteID)
	if err != nil {
		return badRequest(ctx, "Invalid route_id")
	}

	cmd, err := commands.NewAssignRouteCommand(parcelID, routeID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	assignment, err := s.assignRouteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUnknownParcel):
			return notFound(ctx, "Parcel not found")
		case errors.Is(err, commands.ErrUnknownRoute):
			return notFound(ctx, "Route not found")
		case errors.Is(err, commands.ErrParcelIsTerminal):
			return unprocessable(ctx, "Parcel is in a terminal status")
		case errors.Is(err, commands.ErrRouteNotAssignable):
			return unprocessable(ctx, "Route no longer accepts assignments")
		case errors.Is(err, commands.ErrConcurrentAssignmentConflict):
			return conflict(ctx, "Concurrent assignment conflict, retry")
		}
		return internalError(ctx, "Failed to assign route")
	}

	return ctx.JSON(http.StatusCreated, AssignmentResponse{
		AssignmentID: assignment.ID().String(),
		RouteID:      assignment.RouteID().String(),
		ActiveSince:  assignment.AssignedAt(),
	})
}

// GetActiveAssignment handles GET /api/v1/parcels/:parcelId/assignments/active.
func (s *Server) GetActiveAssignment(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	query, err := queries.NewGetActiveAssignmentQuery(parcelID)
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	assignment, err := s.getActiveAssignmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "No active assignment")
		}
		return internalError(ctx, "Failed to retrieve assignment")
	}

	return ctx.JSON(http.StatusOK, ActiveAssignmentResponse{
		AssignmentID: assignment.AssignmentID.String(),
		RouteID:      assignment.RouteID.String(),
		CourierID:    assignment.CourierID.String(),
		RouteDate:    types.Date{Time: assignment.RouteDate},
		ActiveSince:  assignment.AssignedAt,
	})
}

// DeactivateAssignment handles DELETE /api/v1/parcels/:parcelId/assignments/active.
// Idempotent: deactivating a parcel with no active assignment is a 200.
func (s *Server) DeactivateAssignment(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewDeactivateAssignmentCommand(parcelID)
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	if err = s.deactivateAssignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to deactivate assignment")
	}

	return ctx.NoContent(http.StatusOK)
}

// SubmitProof handles POST /api/v1/parcels/:parcelId/proof-of-delivery.
func (s *Server) SubmitProof(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var request ProofRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := optionalUUID(request.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier_id")
	}

	location, err := optionalGeoPoint(request.Latitude, request.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid location")
	}

	cmd, err := commands.NewSubmitProofCommand(
		parcelID, courierID, request.RecipientName, request.SignedAt,
		request.SignatureRef, request.PhotoRef, location, request.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid proof data: "+err.Error())
	}

	proofID, err := s.submitProofHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUnknownParcel):
			return notFound(ctx, "Parcel not found")
		case errors.Is(err, commands.ErrProofAlreadyExists):
			return conflict(ctx, "Proof of delivery already exists")
		}
		return internalError(ctx, "Failed to submit proof of delivery")
	}

	return ctx.JSON(http.StatusCreated, SubmitProofResponse{ProofID: proofID.String()})
}

// CreateRoute handles POST /api/v1/routes.
func (s *Server) CreateRoute(ctx echo.Context) error {
	var request CreateRouteRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier_id")
	}
	hubID, err := kernel.UUIDFromString(request.HubID)
	if err != nil {
		return badRequest(ctx, "Invalid hub_id")
	}

	routeID := kernel.NewUUID()
	cmd, err := commands.NewCreateRouteCommand(routeID, courierID, hubID, request.RouteDate.Time)
	if err != nil {
		return badRequest(ctx, "Invalid route data: "+err.Error())
	}

	if err = s.createRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		switch {
		case errors.Is(err, commands.ErrUnknownCourier):
			return badRequest(ctx, "Unknown courier")
		case errors.Is(err, commands.ErrUnknownHub):
			return badRequest(ctx, "Unknown hub")
		case errors.Is(err, commands.ErrCourierAlreadyScheduled):
			return conflict(ctx, "Courier already has a route for this date")
		}
		return internalError(ctx, "Failed to create route")
	}

	return ctx.JSON(http.StatusCreated, CreateRouteResponse{RouteID: routeID.String()})
}

// StartRoute handles POST /api/v1/routes/:routeId/start.
func (s *Server) StartRoute(ctx echo.Context) error {
	return s.routeLifecycle(ctx, func(routeID kernel.UUID) error {
		cmd, err := commands.NewStartRouteCommand(routeID)
		if err != nil {
			return err
		}
		return s.startRouteHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CompleteRoute handles POST /api/v1/routes/:routeId/complete.
func (s *Server) CompleteRoute(ctx echo.Context) error {
	return s.routeLifecycle(ctx, func(routeID kernel.UUID) error {
		cmd, err := commands.NewCompleteRouteCommand(routeID)
		if err != nil {
			return err
		}
		return s.completeRouteHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelRoute handles POST /api/v1/routes/:routeId/cancel.
func (s *Server) CancelRoute(ctx echo.Context) error {
	return s.routeLifecycle(ctx, func(routeID kernel.UUID) error {
		cmd, err := commands.NewCancelRouteCommand(routeID)
		if err != nil {
			return err
		}
		return s.cancelRouteHandler.Handle(ctx.Request().Context(), cmd)
	})
}

func (s *Server) routeLifecycle(ctx echo.Context, handle func(kernel.UUID) error) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("routeId"))
	if err != nil {
		return badRequest(ctx, "Invalid route id")
	}

	err = handle(routeID)
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusOK)
	case errors.Is(err, commands.ErrUnknownRoute):
		return notFound(ctx, "Route not found")
	case errors.Is(err, route.ErrRouteAlreadyStarted),
		errors.Is(err, route.ErrRouteNotStarted),
		errors.Is(err, route.ErrRouteIsTerminal):
		return conflict(ctx, err.Error())
	default:
		return internalError(ctx, "Failed to update route")
	}
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func optionalGeoPoint(latitude, longitude *float64) (*kernel.GeoPoint, error) {
	if latitude == nil && longitude == nil {
		return nil, nil
	}
	if latitude == nil || longitude == nil {
		return nil, errors.New("latitude and longitude must be provided together")
	}
	point, err := kernel.NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func inlineProofFromRequest(request *ProofRequest) (*commands.InlineProof, error) {
	if request == nil {
		return nil, nil
	}

	location, err := optionalGeoPoint(request.Latitude, request.Longitude)
	if err != nil {
		return nil, err
	}

	return &commands.InlineProof{
		RecipientName: request.RecipientName,
		SignedAt:      request.SignedAt,
		SignatureRef:  request.SignatureRef,
		PhotoRef:      request.PhotoRef,
		Location:      location,
		Notes:         request.Notes,
	}, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: message})
}

func conflict(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: message})
}

func unprocessable(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnprocessableEntity,
		Error{Code: http.StatusUnprocessableEntity, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError,
		Error{Code: http.StatusInternalServerError, Message: message})
}
