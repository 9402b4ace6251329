package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arogyalabs/medassist/internal/prompt"
	"github.com/arogyalabs/medassist/internal/retriever"
)

func sampleSnippets() []retriever.Snippet {
	return []retriever.Snippet{
		{Score: 0.9, Category: "medicine", Name: "Paracetamol", Text: "Name: Paracetamol\nContains: Paracetamol 500mg"},
		{Score: 0.8, Category: "remedy", Name: "Ginger", Text: "Remedy: Ginger tea"},
	}
}

func TestBuildGeneral(t *testing.T) {
	got := prompt.BuildGeneral("What helps with fever?", sampleSnippets())

	assert.Contains(t, got, "What helps with fever?")
	assert.Contains(t, got, prompt.Fallback)
	assert.Contains(t, got, "### CONTEXT:")
	assert.Contains(t, got, "### QUESTION:")
	assert.Contains(t, got, "### ANSWER:")
	// Snippets render with category and name headers.
	assert.Contains(t, got, "- (medicine) Paracetamol:")
	assert.Contains(t, got, "Contains: Paracetamol 500mg")
	assert.Contains(t, got, "- (remedy) Ginger:")
}

func TestBuildGeneral_EmptyContext(t *testing.T) {
	got := prompt.BuildGeneral("What is dengue?", nil)

	// An empty context still produces a well-formed prompt with the
	// fallback instruction; the model decides whether it can answer.
	assert.Contains(t, got, prompt.Fallback)
	assert.Contains(t, got, "### CONTEXT:")
	assert.Contains(t, got, "What is dengue?")
}

func TestBuildReport(t *testing.T) {
	got := prompt.BuildReport("Is my hemoglobin normal?", "Hemoglobin: 11.2 g/dL", sampleSnippets())

	assert.Contains(t, got, "### PDF EXTRACTED TEXT:")
	assert.Contains(t, got, "Hemoglobin: 11.2 g/dL")
	assert.Contains(t, got, "### RETRIEVED CONTEXT:")
	assert.Contains(t, got, "### USER QUESTION:")
	assert.Contains(t, got, "Is my hemoglobin normal?")
	assert.Contains(t, got, "### ANALYSIS:")
}

func TestBuildPrescription(t *testing.T) {
	got := prompt.BuildPrescription("What are these medicines for?", "Tab Paracetamol 500mg BD", sampleSnippets())

	assert.Contains(t, got, "Tab Paracetamol 500mg BD")
	assert.Contains(t, got, "### PRESCRIPTION PDF TEXT:")
	assert.Contains(t, got, "### RELATED MEDICINE KNOWLEDGE:")
	assert.Contains(t, got, "### INTERPRETATION:")
	// Dosage must never be inferred and the doctor warning is mandatory.
	assert.Contains(t, got, "Do NOT infer dosage")
	assert.Contains(t, got, "consult a doctor")
}

func TestBuildMultiDocumentSummary(t *testing.T) {
	docs := "report one text" + prompt.DocumentDelimiter + "report two text"
	got := prompt.BuildMultiDocumentSummary(docs, "Any abnormal findings?")

	assert.Contains(t, got, "report one text")
	assert.Contains(t, got, "--- NEW DOCUMENT ---")
	assert.Contains(t, got, "### USER QUESTION:")
	assert.Contains(t, got, "Any abnormal findings?")
	assert.Contains(t, got, "### SUMMARY:")
}

func TestBuildMultiDocumentSummary_NoQuestion(t *testing.T) {
	got := prompt.BuildMultiDocumentSummary("single document text", "")

	// No question means no question section at all.
	assert.NotContains(t, got, "### USER QUESTION:")
	assert.Contains(t, got, "single document text")
	assert.Contains(t, got, "### SUMMARY:")
}

func TestPromptsEndWithAnswerCue(t *testing.T) {
	prompts := map[string]string{
		"general":      prompt.BuildGeneral("q", nil),
		"report":       prompt.BuildReport("q", "text", nil),
		"prescription": prompt.BuildPrescription("q", "text", nil),
		"summary":      prompt.BuildMultiDocumentSummary("text", ""),
	}

	cues := map[string]string{
		"general":      "### ANSWER:",
		"report":       "### ANALYSIS:",
		"prescription": "### INTERPRETATION:",
		"summary":      "### SUMMARY:",
	}

	for name, p := range prompts {
		trimmed := strings.TrimRight(p, "\n")
		assert.True(t, strings.HasSuffix(trimmed, cues[name]),
			"%s prompt should end with its completion cue", name)
	}
}
