package knowledge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/arogyalabs/medassist/internal/embeddings"
	"github.com/arogyalabs/medassist/internal/vectorstore"
)

// PipelineConfig holds ingestion source locations and batch sizes.
type PipelineConfig struct {
	// MedicineFile is the medicine spreadsheet (XLSX).
	MedicineFile string

	// RemedyFile is the home remedies CSV.
	RemedyFile string

	// LabFile is the lab reference ranges CSV.
	LabFile string

	// DiseaseDir holds one plain-text file per disease.
	DiseaseDir string

	// TabularBatchSize bounds buffered rows for short structured sources.
	// Default: 1000
	TabularBatchSize int

	// DiseaseBatchSize bounds buffered disease files, which are long
	// free-text chunks. Default: 500
	DiseaseBatchSize int

	// ScrollPageSize is the page size for the dedup index scan.
	// Default: 1000
	ScrollPageSize uint32
}

// ApplyDefaults sets default values for unset fields.
func (c *PipelineConfig) ApplyDefaults() {
	if c.TabularBatchSize == 0 {
		c.TabularBatchSize = 1000
	}
	if c.DiseaseBatchSize == 0 {
		c.DiseaseBatchSize = 500
	}
	if c.ScrollPageSize == 0 {
		c.ScrollPageSize = 1000
	}
}

// Pipeline ingests heterogeneous knowledge sources into the vector store.
//
// The run order is: ensure collection → build dedup index from the live
// store → medicines → remedies → lab tests → diseases. The order carries no
// cross-source dependency but is deterministic, and every source is
// attempted even when an earlier one is missing.
type Pipeline struct {
	store    vectorstore.Store
	provider embeddings.Provider
	config   PipelineConfig
	logger   *zap.Logger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(store vectorstore.Store, provider embeddings.Provider, config PipelineConfig, logger *zap.Logger) *Pipeline {
	config.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		store:    store,
		provider: provider,
		config:   config,
		logger:   logger,
	}
}

// Run executes a full ingestion pass.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.store.EnsureCollection(ctx, uint64(p.provider.Dimension())); err != nil {
		return fmt.Errorf("ensuring collection: %w", err)
	}

	idx, err := BuildDedupIndex(ctx, p.store, p.config.ScrollPageSize)
	if err != nil {
		return fmt.Errorf("building dedup index: %w", err)
	}
	p.logger.Info("dedup index built", zap.Int("existing_entries", idx.Len()))

	if err := p.ingestMedicines(ctx, idx); err != nil {
		return err
	}
	if err := p.ingestRemedies(ctx, idx); err != nil {
		return err
	}
	if err := p.ingestLabTests(ctx, idx); err != nil {
		return err
	}
	if err := p.ingestDiseases(ctx, idx); err != nil {
		return err
	}

	p.logger.Info("ingestion complete", zap.Int("total_entries", idx.Len()))
	return nil
}

func (p *Pipeline) ingestMedicines(ctx context.Context, idx *DedupIndex) error {
	return p.ingestTabular(ctx, idx, p.config.MedicineFile, ReadXLSX, MedicineChunk, "medicines")
}

func (p *Pipeline) ingestRemedies(ctx context.Context, idx *DedupIndex) error {
	return p.ingestTabular(ctx, idx, p.config.RemedyFile, ReadCSV, RemedyChunk, "remedies")
}

func (p *Pipeline) ingestLabTests(ctx context.Context, idx *DedupIndex) error {
	return p.ingestTabular(ctx, idx, p.config.LabFile, ReadCSV, LabTestChunk, "lab tests")
}

// ingestTabular ingests one tabular source: read, normalize, dedup,
// buffer, flush.
func (p *Pipeline) ingestTabular(
	ctx context.Context,
	idx *DedupIndex,
	path string,
	read func(string) ([]Record, error),
	normalize func(Record) (Chunk, bool),
	kind string,
) error {
	if path == "" {
		p.logger.Warn("source file not configured, skipping", zap.String("kind", kind))
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		p.logger.Warn("source file not found, skipping",
			zap.String("kind", kind), zap.String("path", path))
		return nil
	}

	records, err := read(path)
	if err != nil {
		return fmt.Errorf("reading %s source: %w", kind, err)
	}

	var buffer []Chunk
	skipped := 0
	for _, rec := range records {
		chunk, ok := normalize(rec)
		if !ok {
			skipped++
			continue
		}
		if idx.Contains(chunk) {
			continue
		}
		buffer = append(buffer, chunk)

		if len(buffer) >= p.config.TabularBatchSize {
			if err := p.flush(ctx, buffer, idx); err != nil {
				return err
			}
			buffer = buffer[:0]
		}
	}
	if len(buffer) > 0 {
		if err := p.flush(ctx, buffer, idx); err != nil {
			return err
		}
	}

	p.logger.Info("source ingested",
		zap.String("kind", kind),
		zap.Int("records", len(records)),
		zap.Int("skipped_unnamed", skipped))
	return nil
}

// ingestDiseases ingests one chunk per .txt file in the disease directory.
func (p *Pipeline) ingestDiseases(ctx context.Context, idx *DedupIndex) error {
	dir := p.config.DiseaseDir
	if dir == "" {
		p.logger.Warn("disease directory not configured, skipping")
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		p.logger.Warn("disease directory not found, skipping", zap.String("path", dir))
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var buffer []Chunk
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			p.logger.Warn("unreadable disease file, skipping",
				zap.String("file", name), zap.Error(err))
			continue
		}

		chunk, ok := DiseaseChunk(name, string(content))
		if !ok {
			continue
		}
		if idx.Contains(chunk) {
			continue
		}
		buffer = append(buffer, chunk)

		if len(buffer) >= p.config.DiseaseBatchSize {
			if err := p.flush(ctx, buffer, idx); err != nil {
				return err
			}
			buffer = buffer[:0]
		}
	}
	if len(buffer) > 0 {
		if err := p.flush(ctx, buffer, idx); err != nil {
			return err
		}
	}

	p.logger.Info("source ingested",
		zap.String("kind", "diseases"),
		zap.Int("files", len(names)))
	return nil
}

// flush embeds a batch of chunks, upserts the points and then grows the
// dedup index, so later batches see these keys as present.
func (p *Pipeline) flush(ctx context.Context, chunks []Chunk, idx *DedupIndex) error {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := p.provider.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding batch of %d chunks: %w", len(chunks), err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding batch: got %d vectors for %d chunks", len(vectors), len(chunks))
	}

	points := make([]vectorstore.Point, len(chunks))
	for i, c := range chunks {
		points[i] = vectorstore.Point{
			ID:     c.ID(),
			Vector: vectors[i],
			Payload: vectorstore.Payload{
				Category: string(c.Category),
				Name:     c.Name,
				Text:     c.Text,
			},
		}
	}

	if err := p.store.Upsert(ctx, points); err != nil {
		return fmt.Errorf("upserting batch of %d points: %w", len(points), err)
	}

	for _, c := range chunks {
		idx.Add(c)
	}

	p.logger.Info("batch inserted", zap.Int("points", len(points)))
	return nil
}
