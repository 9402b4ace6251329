package embeddings_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalabs/medassist/internal/embeddings"
)

func l2Norm(vec []float32) float64 {
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	return math.Sqrt(sumSq)
}

func TestNormalize_UnitLength(t *testing.T) {
	tests := []struct {
		name string
		vec  []float32
	}{
		{"simple", []float32{3, 4}},
		{"negative components", []float32{-1, 2, -3, 4}},
		{"already normalized", []float32{1, 0, 0}},
		{"tiny values", []float32{1e-5, 2e-5, 3e-5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := embeddings.Normalize(tt.vec)
			assert.InDelta(t, 1.0, l2Norm(got), 1e-6)
		})
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	vec := []float32{0, 0, 0, 0}
	got := embeddings.Normalize(vec)

	// No division by zero; the zero vector passes through unchanged.
	assert.Equal(t, []float32{0, 0, 0, 0}, got)
}

func TestNormalizeAll(t *testing.T) {
	vecs := [][]float32{
		{3, 4},
		{0, 0},
		{5, 12},
	}

	got := embeddings.NormalizeAll(vecs)

	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, l2Norm(got[0]), 1e-6)
	assert.Equal(t, []float32{0, 0}, got[1])
	assert.InDelta(t, 1.0, l2Norm(got[2]), 1e-6)
}

// rawProvider returns unnormalized vectors to exercise the wrapper.
type rawProvider struct{}

func (rawProvider) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = []float32{2, 0, 0}
	}
	return vecs, nil
}

func (rawProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return []float32{0, 3, 0}, nil
}

func (rawProvider) Dimension() int { return 3 }
func (rawProvider) Close() error   { return nil }

func TestNormalizedProvider(t *testing.T) {
	p := embeddings.Normalized(rawProvider{})

	docs, err := p.EmbedDocuments(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, vec := range docs {
		assert.InDelta(t, 1.0, l2Norm(vec), 1e-6)
	}

	q, err := p.EmbedQuery(context.Background(), "query")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, l2Norm(q), 1e-6)
	assert.Equal(t, 3, p.Dimension())
}
