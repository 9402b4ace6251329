package knowledge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/arogyalabs/medassist/internal/knowledge"
)

func TestNewRecord(t *testing.T) {
	rec := knowledge.NewRecord(
		[]string{"Name", " Health Issue ", "", "Yogasan"},
		[]string{"Ginger", "Cold"},
	)

	assert.Equal(t, "Ginger", rec.Get("Name"))
	// Header columns are trimmed.
	assert.Equal(t, "Cold", rec.Get("Health Issue"))
	// Missing values default to empty, as do unknown columns.
	assert.Equal(t, "", rec.Get("Yogasan"))
	assert.Equal(t, "", rec.Get("No Such Column"))
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remedies.csv")
	content := "Name of Item,Health Issue,Home Remedy\nGinger,Cold,Ginger tea\nTulsi,Cough,Tulsi leaves\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := knowledge.ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Ginger", records[0].Get("Name of Item"))
	assert.Equal(t, "Cold", records[0].Get("Health Issue"))
	assert.Equal(t, "Tulsi leaves", records[1].Get("Home Remedy"))
}

func TestReadCSV_RaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	content := "Name of Item,Health Issue\nGinger\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := knowledge.ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ginger", records[0].Get("Name of Item"))
	assert.Equal(t, "", records[0].Get("Health Issue"))
}

func TestReadCSV_Missing(t *testing.T) {
	_, err := knowledge.ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medicines.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Name", "Contains"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Paracetamol", "Paracetamol 500mg"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Ibuprofen", "Ibuprofen 400mg"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	records, err := knowledge.ReadXLSX(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Paracetamol", records[0].Get("Name"))
	assert.Equal(t, "Ibuprofen 400mg", records[1].Get("Contains"))
}
