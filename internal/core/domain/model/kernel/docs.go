// Package kernel provides core domain primitives and utilities for the parcel
// lifecycle system. It implements fundamental building blocks following
// Domain-Driven Design principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - TrackingCode: A value object for the immutable, globally unique parcel tracking code
//   - GeoPoint: A value object for WGS84 coordinates captured with proofs of delivery
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
