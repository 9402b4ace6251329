package knowledge_test

import (
	"context"
	"sort"

	"github.com/arogyalabs/medassist/internal/vectorstore"
)

// fakeStore is an in-memory vectorstore.Store for ingestion tests.
type fakeStore struct {
	ensured    bool
	vectorSize uint64
	points     map[string]vectorstore.Point
	upserts    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{points: make(map[string]vectorstore.Point)}
}

func (s *fakeStore) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	s.ensured = true
	s.vectorSize = vectorSize
	return nil
}

func (s *fakeStore) Upsert(ctx context.Context, points []vectorstore.Point) error {
	s.upserts++
	for _, p := range points {
		s.points[p.ID] = p
	}
	return nil
}

func (s *fakeStore) ScrollPayloads(ctx context.Context, pageSize uint32, fn func(vectorstore.Payload) error) error {
	ids := make([]string, 0, len(s.points))
	for id := range s.points {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := fn(s.points[id].Payload); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeStore) Query(ctx context.Context, vector []float32, topK uint64, category string) ([]vectorstore.ScoredSnippet, error) {
	return nil, nil
}

func (s *fakeStore) Close() error { return nil }

// fakeProvider returns fixed-size unit vectors without a real model.
type fakeProvider struct {
	dimension int
	calls     int
}

func (p *fakeProvider) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	p.calls++
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vec := make([]float32, p.dimension)
		vec[0] = 1
		vecs[i] = vec
	}
	return vecs, nil
}

func (p *fakeProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, p.dimension)
	vec[0] = 1
	return vec, nil
}

func (p *fakeProvider) Dimension() int { return p.dimension }
func (p *fakeProvider) Close() error   { return nil }
