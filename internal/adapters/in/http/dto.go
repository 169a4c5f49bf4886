package http

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RegisterParcelRequest is the body of POST /api/v1/parcels.
type RegisterParcelRequest struct {
	SenderID           string     `json:"sender_id"`
	RecipientID        string     `json:"recipient_id"`
	OriginHubID        string     `json:"origin_hub_id"`
	DestinationHubID   string     `json:"destination_hub_id"`
	OriginZone         *string    `json:"origin_zone,omitempty"`
	DestinationZone    *string    `json:"destination_zone,omitempty"`
	WeightGrams        int        `json:"weight_grams"`
	DeclaredValueCents int64      `json:"declared_value_cents"`
	SlaDueAt           *time.Time `json:"sla_due_at,omitempty"`
}

// RegisterParcelResponse returns the new parcel's identity.
type RegisterParcelResponse struct {
	ParcelID     string `json:"parcel_id"`
	TrackingCode string `json:"tracking_code"`
}

// ParcelResponse is the body of GET /api/v1/parcels/:parcelId.
type ParcelResponse struct {
	ParcelID     string     `json:"parcel_id"`
	TrackingCode string     `json:"tracking_code"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	SlaDueAt     *time.Time `json:"sla_due_at,omitempty"`
}

// ProofRequest carries a proof of delivery, standalone or inline with a
// delivered scan event.
type ProofRequest struct {
	CourierID     *string    `json:"courier_id,omitempty"`
	RecipientName string     `json:"recipient_name"`
	SignedAt      time.Time  `json:"signed_at"`
	SignatureRef  *string    `json:"signature_ref,omitempty"`
	PhotoRef      *string    `json:"photo_ref,omitempty"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// SubmitProofResponse returns the stored proof's identity.
type SubmitProofResponse struct {
	ProofID string `json:"proof_id"`
}

// ScanEventRequest is the body of POST /api/v1/parcels/:parcelId/scan-events.
type ScanEventRequest struct {
	EventType string        `json:"event_type"`
	EventTime time.Time     `json:"event_time"`
	HubID     *string       `json:"hub_id,omitempty"`
	CourierID *string       `json:"courier_id,omitempty"`
	Notes     string        `json:"notes,omitempty"`
	Proof     *ProofRequest `json:"proof,omitempty"`
}

// ScanEventOutcomeResponse reports the lifecycle decision for an ingested
// event. A rejected event is still a 200: the rejection is data, not a
// transport failure.
type ScanEventOutcomeResponse struct {
	Accepted bool   `json:"accepted"`
	Applied  bool   `json:"applied"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
}

// ScanEventResponse is one entry of the parcel's audit log.
type ScanEventResponse struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	EventTime  time.Time `json:"event_time"`
	RecordedAt time.Time `json:"recorded_at"`
	HubID      *string   `json:"hub_id,omitempty"`
	CourierID  *string   `json:"courier_id,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Accepted   bool      `json:"accepted"`
	Applied    bool      `json:"applied"`
	Reason     string    `json:"reason,omitempty"`
}

// AssignRouteRequest is the body of POST /api/v1/parcels/:parcelId/assignments.
type AssignRouteRequest struct {
	RouteID string `json:"route_id"`
}

// AssignmentResponse describes an active assignment.
type AssignmentResponse struct {
	AssignmentID string    `json:"assignment_id"`
	RouteID      string    `json:"route_id"`
	ActiveSince  time.Time `json:"active_since"`
}

// ActiveAssignmentResponse is the body of
// GET /api/v1/parcels/:parcelId/assignments/active.
type ActiveAssignmentResponse struct {
	AssignmentID string     `json:"assignment_id"`
	RouteID      string     `json:"route_id"`
	CourierID    string     `json:"courier_id"`
	RouteDate    types.Date `json:"route_date"`
	ActiveSince  time.Time  `json:"active_since"`
}

// CreateRouteRequest is the body of POST /api/v1/routes.
type CreateRouteRequest struct {
	CourierID string     `json:"courier_id"`
	HubID     string     `json:"hub_id"`
	RouteDate types.Date `json:"route_date"`
}

// CreateRouteResponse returns the new route's identity.
type CreateRouteResponse struct {
	RouteID string `json:"route_id"`
}
