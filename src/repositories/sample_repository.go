package repositories

import (
	"context"

	"samplecatalog/src/domain"
	"samplecatalog/src/domain/entities"
)

// SampleRepository is the typed facade over the document store. Every
// backend stores whole sample documents (embedded values included) and
// interprets the same store-independent filter, so query semantics do not
// drift between backends.
//
// Error contract: FindOneByID and ReplaceOne return domain.ErrNotFound for
// an absent id, InsertOne returns domain.ErrDuplicateKey for an existing
// one, DeleteOneByID reports absence through its bool instead of an error.
// Anything else is an opaque store failure, wrapped, never swallowed.
type SampleRepository interface {
	// FindAll returns every document matching the filter, in no particular
	// order. Ordering and pagination are the caller's concern.
	FindAll(ctx context.Context, filter domain.SampleFilter) ([]entities.Sample, error)

	FindOneByID(ctx context.Context, id string) (*entities.Sample, error)

	InsertOne(ctx context.Context, sample entities.Sample) error

	// ReplaceOne swaps the stored document for the given one, whole-document
	// last-write-wins. There is no optimistic-concurrency token.
	ReplaceOne(ctx context.Context, sample entities.Sample) error

	DeleteOneByID(ctx context.Context, id string) (bool, error)
}
