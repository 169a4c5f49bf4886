// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the parcel logistics system. It implements
// complex business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - ScanApplier: A domain service deciding the outcome of scan events against
//     the parcel lifecycle state machine, including late-event replay and the
//     proof-of-delivery guard
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
