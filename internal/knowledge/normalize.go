package knowledge

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Normalizers convert one source record (or one disease file) into exactly
// one chunk. They return ok=false when the record lacks its identifying
// name field, which callers treat as a silent record-level skip.

// MedicineChunk normalizes one row of the medicine spreadsheet.
// The identifying column is "Name".
func MedicineChunk(rec Record) (Chunk, bool) {
	name := strings.TrimSpace(rec.Get("Name"))
	if name == "" {
		return Chunk{}, false
	}

	text := fmt.Sprintf(`Name: %s
Contains: %s
ProductIntroduction: %s
ProductBenefits: %s
SideEffect: %s
HowToUse: %s
HowWorks: %s
QuickTips: %s
SafetyAdvice: %s
Chemical_Class: %s
Habit_Forming: %s
Therapeutic_Class: %s
Action_Class: %s`,
		name,
		rec.Get("Contains"),
		rec.Get("ProductIntroduction"),
		rec.Get("ProductBenefits"),
		rec.Get("SideEffect"),
		rec.Get("HowToUse"),
		rec.Get("HowWorks"),
		rec.Get("QuickTips"),
		rec.Get("SafetyAdvice"),
		rec.Get("Chemical_Class"),
		rec.Get("Habit_Forming"),
		rec.Get("Therapeutic_Class"),
		rec.Get("Action_Class"))

	return Chunk{Category: CategoryMedicine, Name: name, Text: text}, true
}

// RemedyChunk normalizes one row of the home remedies file.
// The identifying column is "Name of Item".
func RemedyChunk(rec Record) (Chunk, bool) {
	name := strings.TrimSpace(rec.Get("Name of Item"))
	if name == "" {
		return Chunk{}, false
	}

	text := fmt.Sprintf(`Name: %s
Health Issue: %s
Remedy: %s
Yogasan: %s`,
		name,
		rec.Get("Health Issue"),
		rec.Get("Home Remedy"),
		rec.Get("Yogasan"))

	return Chunk{Category: CategoryRemedy, Name: name, Text: text}, true
}

// LabTestChunk normalizes one row of the lab reference master file.
// The identifying column is "Parameter".
func LabTestChunk(rec Record) (Chunk, bool) {
	param := strings.TrimSpace(rec.Get("Parameter"))
	if param == "" {
		return Chunk{}, false
	}

	text := fmt.Sprintf(`Category: %s
Parameter: %s
Male Range: %s
Female Range: %s
Child Range: %s
Neonate Range: %s
SI Unit: %s
Conventional Unit: %s
Interpretation: %s`,
		rec.Get("Category"),
		param,
		rec.Get("Male Range"),
		rec.Get("Female Range"),
		rec.Get("Child Range"),
		rec.Get("Neonate Range"),
		rec.Get("SI Unit"),
		rec.Get("Conventional Unit"),
		rec.Get("Interpretation"))

	return Chunk{Category: CategoryLabTest, Name: param, Text: text}, true
}

// DiseaseChunk normalizes one disease text file. The file name minus its
// extension is the disease name; the trimmed content is the chunk text.
// Empty files and empty names are skipped.
func DiseaseChunk(filename, content string) (Chunk, bool) {
	name := strings.TrimSpace(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if name == "" {
		return Chunk{}, false
	}
	text := strings.TrimSpace(content)
	if text == "" {
		return Chunk{}, false
	}
	return Chunk{Category: CategoryDisease, Name: name, Text: text}, true
}
