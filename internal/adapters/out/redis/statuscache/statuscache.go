// Package statuscache implements the read-side parcel status cache on redis.
// The cache is best effort: callers treat errors as misses, and entries
// expire on a TTL rather than being invalidated in every write path.
package statuscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 30 * time.Second

// cacheEntry is the wire form of a cached parcel lookup.
type cacheEntry struct {
	ID           string     `json:"id"`
	TrackingCode string     `json:"tracking_code"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	SlaDueAt     *time.Time `json:"sla_due_at,omitempty"`
}

// RedisStatusCache implements queries.ParcelStatusCache over go-redis.
type RedisStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatusCache creates a status cache over the given client.
// A non-positive ttl falls back to the default of 30 seconds.
func NewRedisStatusCache(client *redis.Client, ttl time.Duration) *RedisStatusCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStatusCache{client: client, ttl: ttl}
}

// Get returns the cached response for a parcel, or nil on a miss.
func (c *RedisStatusCache) Get(
	ctx context.Context,
	parcelID kernel.UUID,
) (*queries.GetParcelQueryResponse, error) {
	raw, err := c.client.Get(ctx, key(parcelID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry cacheEntry
	if err = json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromString(entry.ID)
	if err != nil {
		return nil, err
	}

	return &queries.GetParcelQueryResponse{
		ID:           id,
		TrackingCode: entry.TrackingCode,
		Status:       entry.Status,
		CreatedAt:    entry.CreatedAt,
		DeliveredAt:  entry.DeliveredAt,
		SlaDueAt:     entry.SlaDueAt,
	}, nil
}

// Set stores a response under the parcel's key with the configured TTL.
func (c *RedisStatusCache) Set(ctx context.Context, response queries.GetParcelQueryResponse) error {
	raw, err := json.Marshal(cacheEntry{
		ID:           response.ID.String(),
		TrackingCode: response.TrackingCode,
		Status:       response.Status,
		CreatedAt:    response.CreatedAt,
		DeliveredAt:  response.DeliveredAt,
		SlaDueAt:     response.SlaDueAt,
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key(response.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached entry for a parcel. Command handlers call it
// after a status change so readers do not see a stale status for a full TTL.
func (c *RedisStatusCache) Invalidate(ctx context.Context, parcelID kernel.UUID) error {
	return c.client.Del(ctx, key(parcelID)).Err()
}

func key(parcelID kernel.UUID) string {
	return fmt.Sprintf("parcel:status:%s", parcelID)
}
