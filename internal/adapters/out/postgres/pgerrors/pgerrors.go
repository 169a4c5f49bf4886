// Package pgerrors classifies PostgreSQL errors into the domain's
// concurrency-conflict category. Repositories use it to translate driver
// errors into ports.ErrConcurrencyConflict, so the application layer can
// retry without knowing about SQLSTATE codes.
package pgerrors

import (
	"errors"
	"fmt"

	"parcels/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// sqlState extracts the SQLSTATE code from a driver error. The gorm postgres
// driver runs on pgx and surfaces *pgconn.PgError; lib/pq connections surface
// *pq.Error. Both are recognized so classification does not depend on which
// driver opened the connection.
func sqlState(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}
	return "", false
}

// IsUniqueViolation reports whether the error is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	code, ok := sqlState(err)
	return ok && code == uniqueViolation
}

// IsSerializationFailure reports whether the error is a serialization failure
// or a deadlock abort. Both mean the transaction lost a race and may succeed
// when retried.
func IsSerializationFailure(err error) bool {
	code, ok := sqlState(err)
	return ok && (code == serializationFailure || code == deadlockDetected)
}

// Classify wraps conflict-class errors with ports.ErrConcurrencyConflict and
// returns every other error unchanged. A nil error stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) || IsSerializationFailure(err) {
		return fmt.Errorf("%w: %w", ports.ErrConcurrencyConflict, err)
	}
	return err
}
