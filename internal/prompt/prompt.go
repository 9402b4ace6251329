// Package prompt assembles task-specific grounded prompts for the
// generation model. Builders are pure functions over already-retrieved or
// already-extracted material; none perform I/O or retrieval.
package prompt

import (
	"fmt"
	"strings"

	"github.com/arogyalabs/medassist/internal/retriever"
)

// Fallback is the exact sentence the model is instructed to emit when the
// retrieved context cannot answer the question. Downstream consumers may
// pattern-match on it, so it must not change.
const Fallback = "The context does not have enough information."

// DocumentDelimiter separates documents in a multi-document summary prompt.
const DocumentDelimiter = "\n\n--- NEW DOCUMENT ---\n\n"

// renderContext renders retrieved snippets as a context block, one entry
// per snippet.
func renderContext(snippets []retriever.Snippet) string {
	var b strings.Builder
	for _, s := range snippets {
		fmt.Fprintf(&b, "- (%s) %s:\n%s\n\n", s.Category, s.Name, s.Text)
	}
	return b.String()
}

// BuildGeneral builds the general Q&A prompt. The model must answer
// strictly from the context and emit Fallback verbatim when the context is
// insufficient.
func BuildGeneral(question string, snippets []retriever.Snippet) string {
	return fmt.Sprintf(`You are an offline medical assistant.
Answer ONLY using the information in the context.
Be particular about what is asked.
Do not paste the whole context; be concise.
Be direct and to the point.
If the answer is not found in the context, say:
%q

### CONTEXT:
%s

### QUESTION:
%s

### ANSWER:
`, Fallback, renderContext(snippets), question)
}

// BuildReport builds the lab-report analysis prompt from the extracted
// report text and retrieved lab knowledge.
func BuildReport(question, reportText string, snippets []retriever.Snippet) string {
	return fmt.Sprintf(`You are an expert medical report analysis assistant.
Use the PDF text AND retrieved medical knowledge to answer the user question.
Be accurate, avoid assumptions.

### PDF EXTRACTED TEXT:
%s

### RETRIEVED CONTEXT:
%s

### USER QUESTION:
%s

### ANALYSIS:
`, reportText, renderContext(snippets), question)
}

// BuildPrescription builds the prescription interpretation prompt. Dosage
// is explained only when explicitly present in the text, never inferred,
// and the answer always advises consulting a doctor before any change.
func BuildPrescription(question, prescriptionText string, snippets []retriever.Snippet) string {
	return fmt.Sprintf(`You are a prescription interpretation assistant.
Use the prescription text and the retrieved medicine knowledge.

You must:
- Identify medicines in the prescription.
- Explain their uses.
- Explain the dosage only if it is clearly written.
- Do NOT infer dosage if it is not clearly written.
- Warn the user to consult a doctor before any changes.

### PRESCRIPTION PDF TEXT:
%s

### RELATED MEDICINE KNOWLEDGE:
%s

### QUESTION:
%s

### INTERPRETATION:
`, prescriptionText, renderContext(snippets), question)
}

// BuildMultiDocumentSummary builds the multi-document summary prompt.
// documentsText is the concatenation of per-document extracted text joined
// with DocumentDelimiter. When question is empty the USER QUESTION section
// is omitted entirely, not left as an empty placeholder.
func BuildMultiDocumentSummary(documentsText, question string) string {
	questionPart := ""
	if question != "" {
		questionPart = fmt.Sprintf("\n### USER QUESTION:\n%s\n", question)
	}

	return fmt.Sprintf(`You are a medical document summarization assistant.
You will be given text extracted from multiple PDF files such as lab reports,
prescriptions, and doctor's notes.

Your task:
- Provide a clean, organized medical summary.
- Highlight key findings from each document.
- Identify abnormal values in lab results.
- Identify medicines and their uses in prescriptions.
- Avoid guessing or adding extra information not present in the text.
- Keep the summary short, structured, and medically useful.

### EXTRACTED PDF TEXTS:
%s
%s
### SUMMARY:
`, documentsText, questionPart)
}
