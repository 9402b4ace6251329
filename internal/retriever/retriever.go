// Package retriever performs category-aware semantic retrieval over the
// knowledge base.
package retriever

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/arogyalabs/medassist/internal/embeddings"
	"github.com/arogyalabs/medassist/internal/knowledge"
	"github.com/arogyalabs/medassist/internal/vectorstore"
)

var tracer = otel.Tracer("medassist.retriever")

// DefaultTopK is the number of snippets retrieved when the caller does not
// ask for more.
const DefaultTopK = 3

// Snippet is one retrieved knowledge snippet.
type Snippet struct {
	// Score is the similarity score; results are ordered descending.
	Score float32

	// Text is the chunk content.
	Text string

	// Category is the knowledge category.
	Category string

	// Name is the item name.
	Name string
}

// Retriever embeds a query and performs a filtered top-K similarity search.
type Retriever struct {
	provider embeddings.Provider
	store    vectorstore.Store
	logger   *zap.Logger
}

// New creates a Retriever.
func New(provider embeddings.Provider, store vectorstore.Store, logger *zap.Logger) *Retriever {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retriever{provider: provider, store: store, logger: logger}
}

// Retrieve returns up to topK snippets ranked by descending similarity.
// topK <= 0 falls back to DefaultTopK. An empty category means no filter.
// Zero results is a valid outcome and yields an empty slice, not an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, category knowledge.Category) ([]Snippet, error) {
	ctx, span := tracer.Start(ctx, "Retriever.Retrieve")
	defer span.End()

	if topK <= 0 {
		topK = DefaultTopK
	}
	span.SetAttributes(
		attribute.Int("top_k", topK),
		attribute.String("category", string(category)),
	)

	vector, err := r.provider.EmbedQuery(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.store.Query(ctx, vector, uint64(topK), string(category))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("querying store: %w", err)
	}

	snippets := make([]Snippet, len(results))
	for i, res := range results {
		snippets[i] = Snippet{
			Score:    res.Score,
			Text:     res.Text,
			Category: res.Category,
			Name:     res.Name,
		}
	}

	span.SetAttributes(attribute.Int("results_count", len(snippets)))
	r.logger.Debug("retrieved snippets",
		zap.Int("count", len(snippets)),
		zap.String("category", string(category)))
	return snippets, nil
}
