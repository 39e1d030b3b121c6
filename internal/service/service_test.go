package service

import (
	"context"
	"errors"
	"testing"

	"tastebook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeStub implements Store with overridable function fields.
type storeStub struct {
	snapshotFn func() []models.Record
	createFn   func(ctx context.Context, rec models.Record) (models.Record, error)
	updateFn   func(ctx context.Context, rec models.Record) error
	deleteFn   func(ctx context.Context, id string) (bool, error)
}

func (s *storeStub) Snapshot() []models.Record {
	if s.snapshotFn != nil {
		return s.snapshotFn()
	}
	return nil
}

func (s *storeStub) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	if s.createFn != nil {
		return s.createFn(ctx, rec)
	}
	return rec, nil
}

func (s *storeStub) Update(ctx context.Context, rec models.Record) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, rec)
	}
	return nil
}

func (s *storeStub) Delete(ctx context.Context, id string) (bool, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return true, nil
}

// stubWithRecords is a stub whose snapshot always returns the given records.
func stubWithRecords(records ...models.Record) *storeStub {
	return &storeStub{snapshotFn: func() []models.Record { return records }}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}
