// Package config provides configuration loading for medassist.
//
// Configuration is loaded from an optional YAML file, then overridden by
// environment variables with the MEDASSIST_ prefix, on top of hardcoded
// defaults.
package config

import (
	"fmt"
	"time"

	"github.com/arogyalabs/medassist/internal/logging"
	"github.com/arogyalabs/medassist/internal/telemetry"
)

// Config holds the complete medassist configuration.
type Config struct {
	Qdrant     QdrantConfig     `koanf:"qdrant"`
	Embedding  EmbeddingConfig  `koanf:"embedding"`
	Generation GenerationConfig `koanf:"generation"`
	Knowledge  KnowledgeConfig  `koanf:"knowledge"`
	Logging    logging.Config   `koanf:"logging"`
	Telemetry  telemetry.Config `koanf:"telemetry"`
}

// QdrantConfig holds Qdrant vector store configuration.
type QdrantConfig struct {
	// Host is the Qdrant server hostname or IP address.
	Host string `koanf:"host"`

	// Port is the Qdrant gRPC port (not the HTTP REST port).
	Port int `koanf:"port"`

	// Collection is the knowledge base collection name.
	Collection string `koanf:"collection"`

	// UseTLS enables TLS for the gRPC connection.
	UseTLS bool `koanf:"use_tls"`

	// RequestTimeout bounds individual store operations.
	RequestTimeout Duration `koanf:"request_timeout"`
}

// EmbeddingConfig holds embedding model configuration.
type EmbeddingConfig struct {
	// Model is the embedding model name.
	Model string `koanf:"model"`

	// CacheDir is the directory for cached model files.
	CacheDir string `koanf:"cache_dir"`
}

// GenerationConfig holds text generation configuration.
type GenerationConfig struct {
	// Model is the generation model name served by Ollama.
	Model string `koanf:"model"`

	// ServerURL is the Ollama server base URL.
	ServerURL string `koanf:"server_url"`

	// MaxTokens bounds the completion length.
	MaxTokens int `koanf:"max_tokens"`
}

// KnowledgeConfig holds knowledge source file locations.
type KnowledgeConfig struct {
	// DataDir is the root directory for knowledge sources.
	DataDir string `koanf:"data_dir"`

	// MedicineFile is the medicine spreadsheet (XLSX).
	MedicineFile string `koanf:"medicine_file"`

	// RemedyFile is the home remedies CSV.
	RemedyFile string `koanf:"remedy_file"`

	// LabFile is the lab reference ranges CSV.
	LabFile string `koanf:"lab_file"`

	// DiseaseDir holds one plain-text file per disease.
	DiseaseDir string `koanf:"disease_dir"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Qdrant: QdrantConfig{
			Host:           "localhost",
			Port:           6334,
			Collection:     "medical_kb",
			RequestTimeout: Duration(30 * time.Second),
		},
		Embedding: EmbeddingConfig{
			Model:    "BAAI/bge-small-en-v1.5",
			CacheDir: "local_cache",
		},
		Generation: GenerationConfig{
			Model:     "phi3",
			ServerURL: "http://localhost:11434",
			MaxTokens: 256,
		},
		Knowledge: KnowledgeConfig{
			DataDir:      "data",
			MedicineFile: "MID.xlsx",
			RemedyFile:   "home_remedies.csv",
			LabFile:      "lab_report_master.csv",
			DiseaseDir:   "diseases",
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "console",
			Fields: map[string]string{"service": "medassist"},
		},
		Telemetry: telemetry.Config{
			Endpoint:    "localhost:4317",
			ServiceName: "medassist",
			Insecure:    true,
			SampleRate:  1.0,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Qdrant.Host == "" {
		return fmt.Errorf("qdrant host required")
	}
	if c.Qdrant.Port < 1 || c.Qdrant.Port > 65535 {
		return fmt.Errorf("invalid qdrant port: %d (must be 1-65535)", c.Qdrant.Port)
	}
	if c.Qdrant.Collection == "" {
		return fmt.Errorf("qdrant collection required")
	}
	if c.Embedding.Model == "" {
		return fmt.Errorf("embedding model required")
	}
	if c.Generation.Model == "" {
		return fmt.Errorf("generation model required")
	}
	if c.Generation.MaxTokens <= 0 {
		return fmt.Errorf("generation max_tokens must be positive")
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return c.Telemetry.Validate()
}
