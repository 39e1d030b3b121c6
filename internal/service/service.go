// Package service implements the user actions over the record store:
// registration, login, posting recipes, likes, comments, friendships, and
// direct messages. All validation and authorization happens here, before any
// store mutation.
package service

import (
	"context"

	"tastebook/internal/models"
)

// Store is the record store surface the services mutate through.
type Store interface {
	Snapshot() []models.Record
	Create(ctx context.Context, rec models.Record) (models.Record, error)
	Update(ctx context.Context, rec models.Record) error
	Delete(ctx context.Context, id string) (bool, error)
}
