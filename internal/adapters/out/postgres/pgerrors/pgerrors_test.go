package pgerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"parcels/internal/adapters/out/postgres/pgerrors"
	"parcels/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_PgxDriverErrors(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		conflict bool
	}{
		{"unique violation", "23505", true},
		{"serialization failure", "40001", true},
		{"deadlock detected", "40P01", true},
		{"not null violation", "23502", false},
		{"undefined table", "42P01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &pgconn.PgError{Code: tt.code}

			classified := pgerrors.Classify(err)

			require.Error(t, classified)
			if tt.conflict {
				assert.ErrorIs(t, classified, ports.ErrConcurrencyConflict)
			} else {
				assert.NotErrorIs(t, classified, ports.ErrConcurrencyConflict)
			}
			assert.ErrorAs(t, classified, new(*pgconn.PgError))
		})
	}
}

func TestClassify_LibPqErrors(t *testing.T) {
	err := &pq.Error{Code: "23505"}

	classified := pgerrors.Classify(err)

	assert.ErrorIs(t, classified, ports.ErrConcurrencyConflict)
}

func TestClassify_WrappedDriverError(t *testing.T) {
	err := fmt.Errorf("insert assignment: %w", &pgconn.PgError{Code: "23505"})

	classified := pgerrors.Classify(err)

	assert.ErrorIs(t, classified, ports.ErrConcurrencyConflict)
}

func TestClassify_NilAndPlainErrors(t *testing.T) {
	assert.NoError(t, pgerrors.Classify(nil))

	plain := errors.New("connection refused")
	assert.Equal(t, plain, pgerrors.Classify(plain))
	assert.NotErrorIs(t, pgerrors.Classify(plain), ports.ErrConcurrencyConflict)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, pgerrors.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, pgerrors.IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, pgerrors.IsUniqueViolation(&pgconn.PgError{Code: "40001"}))
	assert.False(t, pgerrors.IsUniqueViolation(errors.New("no sqlstate")))
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, pgerrors.IsSerializationFailure(&pgconn.PgError{Code: "40001"}))
	assert.True(t, pgerrors.IsSerializationFailure(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, pgerrors.IsSerializationFailure(&pgconn.PgError{Code: "23505"}))
}
