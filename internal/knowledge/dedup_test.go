package knowledge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalabs/medassist/internal/knowledge"
	"github.com/arogyalabs/medassist/internal/vectorstore"
)

func TestBuildDedupIndex(t *testing.T) {
	store := newFakeStore()
	store.points["1"] = vectorstore.Point{ID: "1", Payload: vectorstore.Payload{Category: "medicine", Name: "Paracetamol"}}
	store.points["2"] = vectorstore.Point{ID: "2", Payload: vectorstore.Payload{Category: "Remedy", Name: "  Ginger  "}}
	// Records missing either field are skipped.
	store.points["3"] = vectorstore.Point{ID: "3", Payload: vectorstore.Payload{Category: "disease", Name: ""}}
	store.points["4"] = vectorstore.Point{ID: "4", Payload: vectorstore.Payload{Category: "", Name: "orphan"}}

	idx, err := knowledge.BuildDedupIndex(context.Background(), store, 1000)
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Contains(knowledge.Chunk{Category: knowledge.CategoryMedicine, Name: "paracetamol"}))
	assert.True(t, idx.Contains(knowledge.Chunk{Category: knowledge.CategoryMedicine, Name: "  PARACETAMOL "}))
	assert.True(t, idx.Contains(knowledge.Chunk{Category: knowledge.CategoryRemedy, Name: "ginger"}))
	assert.False(t, idx.Contains(knowledge.Chunk{Category: knowledge.CategoryDisease, Name: "orphan"}))
}

func TestDedupIndex_Add(t *testing.T) {
	idx := knowledge.NewDedupIndex()
	chunk := knowledge.Chunk{Category: knowledge.CategoryLabTest, Name: "Hemoglobin"}

	assert.False(t, idx.Contains(chunk))
	idx.Add(chunk)
	assert.True(t, idx.Contains(chunk))
	assert.True(t, idx.Contains(knowledge.Chunk{Category: knowledge.CategoryLabTest, Name: "hemoglobin "}))
	assert.Equal(t, 1, idx.Len())

	// Adding the same key twice does not grow the index.
	idx.Add(knowledge.Chunk{Category: knowledge.CategoryLabTest, Name: "HEMOGLOBIN"})
	assert.Equal(t, 1, idx.Len())
}
