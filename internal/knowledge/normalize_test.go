package knowledge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyalabs/medassist/internal/knowledge"
)

func TestMedicineChunk(t *testing.T) {
	rec := knowledge.NewRecord(
		[]string{"Name", "Contains", "SideEffect", "HowToUse"},
		[]string{"Paracetamol 500mg", "Paracetamol", "Nausea", "Take with water"},
	)

	chunk, ok := knowledge.MedicineChunk(rec)
	require.True(t, ok)

	assert.Equal(t, knowledge.CategoryMedicine, chunk.Category)
	assert.Equal(t, "Paracetamol 500mg", chunk.Name)
	assert.Contains(t, chunk.Text, "Name: Paracetamol 500mg")
	assert.Contains(t, chunk.Text, "Contains: Paracetamol")
	assert.Contains(t, chunk.Text, "SideEffect: Nausea")
	assert.Contains(t, chunk.Text, "HowToUse: Take with water")
	// Absent columns render as empty values, not omissions.
	assert.Contains(t, chunk.Text, "Therapeutic_Class: ")
}

func TestMedicineChunk_MissingName(t *testing.T) {
	tests := []struct {
		name string
		rec  knowledge.Record
	}{
		{"empty name", knowledge.NewRecord([]string{"Name"}, []string{""})},
		{"whitespace name", knowledge.NewRecord([]string{"Name"}, []string{"   "})},
		{"no name column", knowledge.NewRecord([]string{"Contains"}, []string{"Paracetamol"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := knowledge.MedicineChunk(tt.rec)
			assert.False(t, ok)
		})
	}
}

func TestRemedyChunk(t *testing.T) {
	rec := knowledge.NewRecord(
		[]string{"Name of Item", "Health Issue", "Home Remedy", "Yogasan"},
		[]string{"Ginger", "Cold", "Ginger tea with honey", "Pranayama"},
	)

	chunk, ok := knowledge.RemedyChunk(rec)
	require.True(t, ok)

	assert.Equal(t, knowledge.CategoryRemedy, chunk.Category)
	assert.Equal(t, "Ginger", chunk.Name)
	assert.Contains(t, chunk.Text, "Health Issue: Cold")
	assert.Contains(t, chunk.Text, "Remedy: Ginger tea with honey")
	assert.Contains(t, chunk.Text, "Yogasan: Pranayama")
}

func TestLabTestChunk(t *testing.T) {
	rec := knowledge.NewRecord(
		[]string{"Parameter", "Category", "Male Range", "Female Range", "SI Unit", "Interpretation"},
		[]string{"Hemoglobin", "Hematology", "13.5-17.5", "12.0-15.5", "g/dL", "Low values suggest anemia"},
	)

	chunk, ok := knowledge.LabTestChunk(rec)
	require.True(t, ok)

	assert.Equal(t, knowledge.CategoryLabTest, chunk.Category)
	assert.Equal(t, "Hemoglobin", chunk.Name)
	assert.Contains(t, chunk.Text, "Category: Hematology")
	assert.Contains(t, chunk.Text, "Male Range: 13.5-17.5")
	assert.Contains(t, chunk.Text, "Female Range: 12.0-15.5")
	assert.Contains(t, chunk.Text, "Interpretation: Low values suggest anemia")
}

func TestLabTestChunk_MissingParameter(t *testing.T) {
	rec := knowledge.NewRecord([]string{"Category"}, []string{"Hematology"})

	_, ok := knowledge.LabTestChunk(rec)
	assert.False(t, ok)
}

func TestDiseaseChunk(t *testing.T) {
	chunk, ok := knowledge.DiseaseChunk("Diabetes.txt", "  Diabetes is a chronic condition.\n")
	require.True(t, ok)

	assert.Equal(t, knowledge.CategoryDisease, chunk.Category)
	assert.Equal(t, "Diabetes", chunk.Name)
	assert.Equal(t, "Diabetes is a chronic condition.", chunk.Text)
}

func TestDiseaseChunk_Skips(t *testing.T) {
	_, ok := knowledge.DiseaseChunk("Empty.txt", "   \n  ")
	assert.False(t, ok, "empty file content is skipped")

	_, ok = knowledge.DiseaseChunk(".txt", "content")
	assert.False(t, ok, "empty name is skipped")
}
