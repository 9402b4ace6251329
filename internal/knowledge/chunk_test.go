package knowledge_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalabs/medassist/internal/knowledge"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    knowledge.Category
		wantErr bool
	}{
		{"medicine", knowledge.CategoryMedicine, false},
		{"remedy", knowledge.CategoryRemedy, false},
		{"lab_test", knowledge.CategoryLabTest, false},
		{"disease", knowledge.CategoryDisease, false},
		{"  Medicine  ", knowledge.CategoryMedicine, false},
		{"LAB_TEST", knowledge.CategoryLabTest, false},
		{"potion", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := knowledge.ParseCategory(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, knowledge.ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChunkID_Deterministic(t *testing.T) {
	a := knowledge.Chunk{Category: knowledge.CategoryMedicine, Name: "Paracetamol"}
	b := knowledge.Chunk{Category: knowledge.CategoryMedicine, Name: "Paracetamol"}

	assert.Equal(t, a.ID(), b.ID())

	// Valid UUID, and v5 (SHA-1 based).
	id, err := uuid.Parse(a.ID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
}

func TestChunkID_CaseAndWhitespaceInsensitive(t *testing.T) {
	a := knowledge.Chunk{Category: knowledge.CategoryMedicine, Name: "Paracetamol"}
	b := knowledge.Chunk{Category: knowledge.CategoryMedicine, Name: "  paracetamol  "}
	c := knowledge.Chunk{Category: knowledge.CategoryMedicine, Name: "PARACETAMOL"}

	assert.Equal(t, a.ID(), b.ID())
	assert.Equal(t, a.ID(), c.ID())
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, a.Key(), c.Key())
}

func TestChunkID_DiffersAcrossCategories(t *testing.T) {
	med := knowledge.Chunk{Category: knowledge.CategoryMedicine, Name: "ginger"}
	rem := knowledge.Chunk{Category: knowledge.CategoryRemedy, Name: "ginger"}

	assert.NotEqual(t, med.ID(), rem.ID())
}

func TestChunkKey_Normalization(t *testing.T) {
	c := knowledge.Chunk{Category: knowledge.CategoryLabTest, Name: "  Hemoglobin "}
	key := c.Key()

	assert.Equal(t, "lab_test", key.Category)
	assert.Equal(t, "hemoglobin", key.Name)
}
