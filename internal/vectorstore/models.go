package vectorstore

// Payload is the metadata stored alongside each vector.
type Payload struct {
	// Category is the knowledge category (medicine, remedy, lab_test, disease).
	Category string

	// Name is the canonical item name within the category.
	Name string

	// Text is the full natural-language chunk content.
	Text string
}

// Point is a persisted vector record.
type Point struct {
	// ID is a deterministic identifier derived from (category, name).
	// Re-ingesting the same logical item always yields the same id, so an
	// upsert at that id replaces rather than duplicates.
	ID string

	// Vector is the L2-normalized embedding.
	Vector []float32

	// Payload is the stored metadata.
	Payload Payload
}

// ScoredSnippet is a similarity search result.
type ScoredSnippet struct {
	// Score is the similarity score (higher = more similar).
	Score float32

	// Text is the chunk content. Empty if missing from the payload.
	Text string

	// Category is the knowledge category. Empty if missing from the payload.
	Category string

	// Name is the item name. Empty if missing from the payload.
	Name string
}
