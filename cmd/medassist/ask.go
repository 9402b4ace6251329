package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arogyalabs/medassist/internal/assistant"
	"github.com/arogyalabs/medassist/internal/config"
	"github.com/arogyalabs/medassist/internal/embeddings"
	"github.com/arogyalabs/medassist/internal/extract"
	"github.com/arogyalabs/medassist/internal/generate"
	"github.com/arogyalabs/medassist/internal/retriever"
	"github.com/arogyalabs/medassist/internal/vectorstore"
)

var (
	reportFile       string
	prescriptionFile string
	summarizeFiles   []string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a general medical question",
	Long: `Ask a question answered strictly from the local knowledge base.

Examples:
  medassist ask "What are the side effects of paracetamol?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var reportCmd = &cobra.Command{
	Use:   "report --file <pdf> <question>",
	Short: "Analyze a lab report PDF",
	Long: `Analyze an uploaded lab report against lab reference knowledge.

Examples:
  medassist report --file labreport.pdf "Explain abnormalities in this report."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

var prescriptionCmd = &cobra.Command{
	Use:   "prescription --file <pdf> <question>",
	Short: "Interpret a prescription PDF",
	Long: `Interpret an uploaded prescription against medicine knowledge.

Examples:
  medassist prescription --file pres.pdf "Explain this prescription."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrescription,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize --file <pdf> [--file <pdf> ...] [question]",
	Short: "Summarize several medical documents at once",
	Long: `Summarize multiple documents (lab reports, prescriptions, notes) into one
structured overview. An unreadable document is replaced by an inline
warning and never blocks summarization of the others.

Examples:
  medassist summarize --file labreport.pdf --file pres.pdf
  medassist summarize --file a.pdf --file b.pdf "Summarize both documents"`,
	RunE: runSummarize,
}

func init() {
	reportCmd.Flags().StringVar(&reportFile, "file", "", "lab report PDF (required)")
	_ = reportCmd.MarkFlagRequired("file")

	prescriptionCmd.Flags().StringVar(&prescriptionFile, "file", "", "prescription PDF (required)")
	_ = prescriptionCmd.MarkFlagRequired("file")

	summarizeCmd.Flags().StringArrayVar(&summarizeFiles, "file", nil, "document PDF (repeatable, required)")
	_ = summarizeCmd.MarkFlagRequired("file")
}

// newAssistant wires the long-lived services: embedding provider, vector
// store, generator and extractor are constructed once and passed by
// reference into the assistant. The returned cleanup releases them.
func newAssistant(cfg *config.Config, logger *zap.Logger) (*assistant.Assistant, func(), error) {
	fastEmbed, err := embeddings.NewFastEmbedProvider(embeddings.FastEmbedConfig{
		Model:    cfg.Embedding.Model,
		CacheDir: cfg.Embedding.CacheDir,
	})
	if err != nil {
		return nil, nil, err
	}
	provider := embeddings.Normalized(fastEmbed)

	store, err := vectorstore.NewQdrantStore(vectorstore.QdrantConfig{
		Host:           cfg.Qdrant.Host,
		Port:           cfg.Qdrant.Port,
		CollectionName: cfg.Qdrant.Collection,
		UseTLS:         cfg.Qdrant.UseTLS,
		RequestTimeout: cfg.Qdrant.RequestTimeout.Duration(),
	}, logger.Named("vectorstore"))
	if err != nil {
		_ = provider.Close()
		return nil, nil, err
	}

	generator, err := generate.NewOllamaGenerator(generate.OllamaConfig{
		Model:     cfg.Generation.Model,
		ServerURL: cfg.Generation.ServerURL,
		MaxTokens: cfg.Generation.MaxTokens,
	})
	if err != nil {
		_ = store.Close()
		_ = provider.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = store.Close()
		_ = provider.Close()
	}

	r := retriever.New(provider, store, logger.Named("retriever"))
	a := assistant.New(r, generator, extract.NewPDFExtractor(), logger.Named("assistant"))
	return a, cleanup, nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, logger, cleanup, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	a, closeServices, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}
	defer closeServices()

	answer, err := a.AnswerGeneral(cmd.Context(), joinArgs(args))
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, logger, cleanup, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	a, closeServices, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}
	defer closeServices()

	answer, err := a.AnswerReport(cmd.Context(), joinArgs(args), reportFile)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

func runPrescription(cmd *cobra.Command, args []string) error {
	cfg, logger, cleanup, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	a, closeServices, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}
	defer closeServices()

	answer, err := a.AnswerPrescription(cmd.Context(), joinArgs(args), prescriptionFile)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, logger, cleanup, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	a, closeServices, err := newAssistant(cfg, logger)
	if err != nil {
		return err
	}
	defer closeServices()

	answer, err := a.SummarizeDocuments(cmd.Context(), summarizeFiles, joinArgs(args))
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}
