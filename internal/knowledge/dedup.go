package knowledge

import (
	"context"
	"fmt"
	"strings"

	"github.com/arogyalabs/medassist/internal/vectorstore"
)

// DedupIndex tracks which (category, name) pairs already exist in the
// store, making ingestion idempotent. It is built once per ingestion run
// by enumerating the persisted collection, grown as new chunks are
// accepted during the run, and discarded afterwards.
type DedupIndex struct {
	seen map[Key]struct{}
}

// NewDedupIndex returns an empty index.
func NewDedupIndex() *DedupIndex {
	return &DedupIndex{seen: make(map[Key]struct{})}
}

// BuildDedupIndex builds the index by fully draining a payload-only scroll
// of the store. Records missing either field are skipped.
func BuildDedupIndex(ctx context.Context, store vectorstore.Store, pageSize uint32) (*DedupIndex, error) {
	idx := NewDedupIndex()
	err := store.ScrollPayloads(ctx, pageSize, func(p vectorstore.Payload) error {
		category := strings.ToLower(strings.TrimSpace(p.Category))
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if category == "" || name == "" {
			return nil
		}
		idx.seen[Key{Category: category, Name: name}] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning existing entries: %w", err)
	}
	return idx, nil
}

// Contains reports whether the chunk's key is already present.
func (i *DedupIndex) Contains(c Chunk) bool {
	_, ok := i.seen[c.Key()]
	return ok
}

// Add records the chunk's key after a successful upsert, so later batches
// in the same run see earlier insertions as already present.
func (i *DedupIndex) Add(c Chunk) {
	i.seen[c.Key()] = struct{}{}
}

// Len returns the number of tracked keys.
func (i *DedupIndex) Len() int {
	return len(i.seen)
}
