// Package assistant composes retrieval, prompt assembly and generation
// into the answer-producing operations the boundary layer calls.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arogyalabs/medassist/internal/extract"
	"github.com/arogyalabs/medassist/internal/generate"
	"github.com/arogyalabs/medassist/internal/knowledge"
	"github.com/arogyalabs/medassist/internal/prompt"
	"github.com/arogyalabs/medassist/internal/retriever"
)

// UnreadableDocumentGuidance is returned verbatim when a single uploaded
// document yields no extractable text. It signals extraction failure
// distinctly from a generated answer; retrieval and generation are never
// invoked in that case.
const UnreadableDocumentGuidance = "It looks like you may have attached the wrong PDF, " +
	"or the quality of the PDF is too low to extract text. " +
	"Please upload a clear medical document PDF."

// minDocumentLength is the minimum extracted length for a document to
// count as readable in a multi-document summary.
const minDocumentLength = 15

// Retriever is the retrieval dependency of the assistant.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int, category knowledge.Category) ([]retriever.Snippet, error)
}

// Assistant orchestrates the four answer-producing operations.
type Assistant struct {
	retriever Retriever
	generator generate.Generator
	extractor extract.TextExtractor
	logger    *zap.Logger
}

// New creates an Assistant.
func New(r Retriever, g generate.Generator, e extract.TextExtractor, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{retriever: r, generator: g, extractor: e, logger: logger}
}

// AnswerGeneral answers a question from the knowledge base, without a
// category filter.
func (a *Assistant) AnswerGeneral(ctx context.Context, question string) (string, error) {
	snippets, err := a.retriever.Retrieve(ctx, question, retriever.DefaultTopK, "")
	if err != nil {
		return "", fmt.Errorf("retrieving context: %w", err)
	}
	return a.generator.Generate(ctx, prompt.BuildGeneral(question, snippets))
}

// AnswerReport analyzes an uploaded lab report. If no text can be
// extracted it returns UnreadableDocumentGuidance without retrieval or
// generation.
func (a *Assistant) AnswerReport(ctx context.Context, question, path string) (string, error) {
	text, ok := a.extractOne(ctx, path)
	if !ok {
		return UnreadableDocumentGuidance, nil
	}

	snippets, err := a.retriever.Retrieve(ctx, text, retriever.DefaultTopK, knowledge.CategoryLabTest)
	if err != nil {
		return "", fmt.Errorf("retrieving lab knowledge: %w", err)
	}
	return a.generator.Generate(ctx, prompt.BuildReport(question, text, snippets))
}

// AnswerPrescription interprets an uploaded prescription. Same shape as
// AnswerReport, restricted to medicine knowledge.
func (a *Assistant) AnswerPrescription(ctx context.Context, question, path string) (string, error) {
	text, ok := a.extractOne(ctx, path)
	if !ok {
		return UnreadableDocumentGuidance, nil
	}

	snippets, err := a.retriever.Retrieve(ctx, text, retriever.DefaultTopK, knowledge.CategoryMedicine)
	if err != nil {
		return "", fmt.Errorf("retrieving medicine knowledge: %w", err)
	}
	return a.generator.Generate(ctx, prompt.BuildPrescription(question, text, snippets))
}

// SummarizeDocuments summarizes several documents at once. A document
// whose extraction fails or falls under the minimum length is replaced by
// an inline warning naming the path; one unreadable document never blocks
// summarization of the others.
func (a *Assistant) SummarizeDocuments(ctx context.Context, paths []string, question string) (string, error) {
	texts := make([]string, 0, len(paths))
	for _, path := range paths {
		text, err := a.extractor.ExtractText(ctx, path)
		if err != nil {
			a.logger.Warn("document extraction failed",
				zap.String("path", path), zap.Error(err))
			text = ""
		}
		if len(strings.TrimSpace(text)) < minDocumentLength {
			texts = append(texts, fmt.Sprintf(
				"[WARNING] Could not extract text from file: %s. It may be the wrong file or too low quality.", path))
			continue
		}
		texts = append(texts, text)
	}

	combined := strings.Join(texts, prompt.DocumentDelimiter)
	return a.generator.Generate(ctx, prompt.BuildMultiDocumentSummary(combined, question))
}

// extractOne extracts a single document's text, reporting ok=false when
// the document is unreadable or yields only whitespace.
func (a *Assistant) extractOne(ctx context.Context, path string) (string, bool) {
	text, err := a.extractor.ExtractText(ctx, path)
	if err != nil {
		a.logger.Warn("document extraction failed",
			zap.String("path", path), zap.Error(err))
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		a.logger.Warn("document yielded no text", zap.String("path", path))
		return "", false
	}
	return text, true
}
