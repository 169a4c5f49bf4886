package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParcelStatusCache is the read-side cache consulted before the database.
// A nil response with a nil error is a cache miss. Implementations are best
// effort: the handler treats any cache error as a miss and never fails a
// request because of the cache.
type ParcelStatusCache interface {
	Get(ctx context.Context, parcelID kernel.UUID) (*GetParcelQueryResponse, error)
	Set(ctx context.Context, response GetParcelQueryResponse) error
}

// GetParcelQueryHandler serves single-parcel lookups, cache first.
//
// Example:
//
//	handler := NewGetParcelQueryHandler(db, cache)
//	query, _ := NewGetParcelQuery(parcelID)
//
//	response, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown parcel
//	}
type GetParcelQueryHandler struct {
	db    *gorm.DB
	cache ParcelStatusCache
}

// NewGetParcelQueryHandler creates a handler for parcel lookups.
// The cache may be nil, in which case every lookup hits the database.
func NewGetParcelQueryHandler(db *gorm.DB, cache ParcelStatusCache) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db, cache: cache}
}

// Handle executes the lookup. The cache is consulted first; on a miss the
// parcel row is read and the cache refreshed best effort.
func (h GetParcelQueryHandler) Handle(
	ctx context.Context,
	query GetParcelQuery,
) (GetParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelQueryResponse{}, err
	}

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, query.ParcelID()); err == nil && cached != nil {
			return *cached, nil
		}
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_code,
			status,
			created_at,
			delivered_at,
			sla_due_at
		FROM parcels
		WHERE id = ?
	`, query.ParcelID().Bytes()).Row()

	var response GetParcelQueryResponse
	var id uuid.UUID
	var status int
	var deliveredAt, slaDueAt *time.Time

	err := row.Scan(&id, &response.TrackingCode, &status, &response.CreatedAt, &deliveredAt, &slaDueAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetParcelQueryResponse{}, errs.NewObjectNotFoundError("parcelID", query.ParcelID())
		}
		return GetParcelQueryResponse{}, err
	}

	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetParcelQueryResponse{}, err
	}
	response.ID = parcelID
	response.Status = parcel.Status(status).String()
	response.DeliveredAt = deliveredAt
	response.SlaDueAt = slaDueAt

	if h.cache != nil {
		_ = h.cache.Set(ctx, response)
	}

	return response, nil
}
