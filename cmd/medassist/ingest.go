package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arogyalabs/medassist/internal/config"
	"github.com/arogyalabs/medassist/internal/embeddings"
	"github.com/arogyalabs/medassist/internal/knowledge"
	"github.com/arogyalabs/medassist/internal/vectorstore"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest knowledge sources into the vector store",
	Long: `Ingest the medicine spreadsheet, home remedies, lab reference ranges and
disease fact sheets into the vector knowledge base.

Ingestion is idempotent: items already present (same category and name,
case-insensitively) are skipped, so the command can be re-run safely.

Examples:
  # Ingest with defaults (data/ directory, local Qdrant)
  medassist ingest

  # Ingest with a custom config
  medassist ingest --config medassist.yaml`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, logger, cleanup, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	fastEmbed, err := embeddings.NewFastEmbedProvider(embeddings.FastEmbedConfig{
		Model:    cfg.Embedding.Model,
		CacheDir: cfg.Embedding.CacheDir,
	})
	if err != nil {
		return err
	}
	provider := embeddings.Normalized(fastEmbed)
	defer func() { _ = provider.Close() }()

	store, err := vectorstore.NewQdrantStore(vectorstore.QdrantConfig{
		Host:           cfg.Qdrant.Host,
		Port:           cfg.Qdrant.Port,
		CollectionName: cfg.Qdrant.Collection,
		UseTLS:         cfg.Qdrant.UseTLS,
		RequestTimeout: cfg.Qdrant.RequestTimeout.Duration(),
	}, logger.Named("vectorstore"))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	pipeline := knowledge.NewPipeline(store, provider, pipelineConfig(cfg), logger.Named("ingest"))

	logger.Info("starting ingestion", zap.String("data_dir", cfg.Knowledge.DataDir))
	return pipeline.Run(cmd.Context())
}

// pipelineConfig resolves source paths relative to the data directory.
func pipelineConfig(cfg *config.Config) knowledge.PipelineConfig {
	dataDir := cfg.Knowledge.DataDir
	return knowledge.PipelineConfig{
		MedicineFile: filepath.Join(dataDir, cfg.Knowledge.MedicineFile),
		RemedyFile:   filepath.Join(dataDir, cfg.Knowledge.RemedyFile),
		LabFile:      filepath.Join(dataDir, cfg.Knowledge.LabFile),
		DiseaseDir:   filepath.Join(dataDir, cfg.Knowledge.DiseaseDir),
	}
}
