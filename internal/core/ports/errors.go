package ports

import "errors"

// ErrConcurrencyConflict is returned by repositories when a write lost a race
// with a concurrent transaction: an optimistic version check failed, a unique
// constraint fired, or the store aborted the transaction with a serialization
// or deadlock error. The operation may succeed when retried.
var ErrConcurrencyConflict = errors.New("concurrent modification conflict")
