// Package vectorstore defines the interface for vector storage operations.
package vectorstore

import (
	"context"
	"errors"
)

// Sentinel errors for vector store operations.
var (
	// ErrCollectionNotFound is returned when a collection does not exist.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyPoints indicates empty or nil points.
	ErrEmptyPoints = errors.New("empty or nil points")

	// ErrConnectionFailed indicates gRPC connection issues.
	ErrConnectionFailed = errors.New("failed to connect to Qdrant")

	// ErrInvalidCollectionName indicates collection name validation failure.
	ErrInvalidCollectionName = errors.New("invalid collection name")
)

// Store is the interface for vector storage operations.
//
// The interface is transport-agnostic and covers exactly what the knowledge
// base needs: idempotent collection setup, batched upserts keyed by stable
// ids, payload-only enumeration for deduplication, and filtered similarity
// search.
type Store interface {
	// EnsureCollection creates the collection if it is absent and leaves it
	// untouched if it is present. It never recreates an existing collection,
	// so repeated runs against a populated store cannot lose data.
	EnsureCollection(ctx context.Context, vectorSize uint64) error

	// Upsert inserts or replaces points by id. Points are flushed to the
	// server in bounded-size batches to limit request size and peak memory.
	Upsert(ctx context.Context, points []Point) error

	// ScrollPayloads enumerates the payloads of every stored point, without
	// vectors, following the pagination cursor until the collection is
	// exhausted. fn is called once per point; a non-nil return stops the
	// scroll and is propagated.
	ScrollPayloads(ctx context.Context, pageSize uint32, fn func(Payload) error) error

	// Query returns up to topK nearest points by similarity, highest score
	// first, each with its payload. A non-empty category restricts results
	// to points whose category payload field matches exactly.
	Query(ctx context.Context, vector []float32, topK uint64, category string) ([]ScoredSnippet, error)

	// Close closes the store connection and releases resources.
	Close() error
}
