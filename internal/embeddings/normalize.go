package embeddings

import (
	"context"
	"math"
)

// Normalize scales vec to unit L2 length in place and returns it.
//
// A degenerate all-zero vector would divide by zero; in that case the norm
// is substituted with 1.0, leaving the zero vector unchanged.
func Normalize(vec []float32) []float32 {
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		norm = 1.0
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

// NormalizeAll normalizes every vector in vecs in place and returns vecs.
func NormalizeAll(vecs [][]float32) [][]float32 {
	for i := range vecs {
		Normalize(vecs[i])
	}
	return vecs
}

// Normalized wraps a provider so every returned vector is L2-normalized.
func Normalized(p Provider) Provider {
	return &normalizedProvider{inner: p}
}

type normalizedProvider struct {
	inner Provider
}

func (n *normalizedProvider) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := n.inner.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(vecs), nil
}

func (n *normalizedProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vec, err := n.inner.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}
	return Normalize(vec), nil
}

func (n *normalizedProvider) Dimension() int { return n.inner.Dimension() }

func (n *normalizedProvider) Close() error { return n.inner.Close() }
