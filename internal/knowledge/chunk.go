// Package knowledge models the medical knowledge base and its ingestion.
package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownCategory indicates a category outside the supported set.
var ErrUnknownCategory = errors.New("unknown knowledge category")

// Category classifies a knowledge chunk.
//
// The set is closed and validated at ingestion time. Extending it means
// adding a constant here plus a normalizer that produces chunks for it.
type Category string

const (
	// CategoryMedicine covers drug monographs.
	CategoryMedicine Category = "medicine"
	// CategoryRemedy covers home remedies.
	CategoryRemedy Category = "remedy"
	// CategoryLabTest covers lab-test reference ranges.
	CategoryLabTest Category = "lab_test"
	// CategoryDisease covers disease fact sheets.
	CategoryDisease Category = "disease"
)

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryMedicine:
		return CategoryMedicine, nil
	case CategoryRemedy:
		return CategoryRemedy, nil
	case CategoryLabTest:
		return CategoryLabTest, nil
	case CategoryDisease:
		return CategoryDisease, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Chunk is one atomic unit of ingestible knowledge.
type Chunk struct {
	// Category is the knowledge category.
	Category Category

	// Name is the canonical, human-readable identifier within the category.
	Name string

	// Text is the full natural-language chunk content.
	Text string
}

// Key identifies a chunk for deduplication. Category and name are
// lower-cased and the name trimmed, so identity is insensitive to case
// and surrounding whitespace.
type Key struct {
	Category string
	Name     string
}

// Key returns the deduplication key for the chunk.
func (c Chunk) Key() Key {
	return Key{
		Category: strings.ToLower(string(c.Category)),
		Name:     strings.ToLower(strings.TrimSpace(c.Name)),
	}
}

// ID returns the deterministic point id for the chunk: a UUIDv5 in the DNS
// namespace over "{category}-{name}" after normalization. Repeated
// ingestion of the same logical item always yields the same id, which is
// what makes upserts idempotent.
func (c Chunk) ID() string {
	key := c.Key()
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(key.Category+"-"+key.Name)).String()
}
