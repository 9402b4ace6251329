// Package vectorstore provides vector storage implementations.
package vectorstore

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpccodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Tracer for OpenTelemetry instrumentation.
var tracer = otel.Tracer("medassist.vectorstore.qdrant")

// collectionNamePattern validates collection names.
// Pattern: lowercase letters, numbers, underscores, 1-64 characters.
var collectionNamePattern = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

// QdrantConfig holds configuration for the Qdrant gRPC client.
type QdrantConfig struct {
	// Host is the Qdrant server hostname or IP address.
	// Default: "localhost"
	Host string

	// Port is the Qdrant gRPC port (NOT the HTTP REST port).
	// Default: 6334
	Port int

	// CollectionName is the knowledge base collection.
	CollectionName string

	// UseTLS enables TLS encryption for the gRPC connection.
	UseTLS bool

	// MaxRetries is the maximum number of retry attempts for transient failures.
	// Default: 3
	MaxRetries int

	// RetryBackoff is the initial backoff duration for retries.
	// Doubles on each retry.
	// Default: 1 second
	RetryBackoff time.Duration

	// RequestTimeout bounds each individual store operation attempt.
	// Default: 30 seconds
	RequestTimeout time.Duration

	// MaxMessageSize is the maximum gRPC message size in bytes.
	// Default: 50MB
	MaxMessageSize int

	// UpsertBatchSize bounds how many points go into a single upsert request.
	// Default: 256
	UpsertBatchSize int
}

// ApplyDefaults sets default values for unset fields.
func (c *QdrantConfig) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 6334
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.RetryBackoff == 0 {
		c.RetryBackoff = time.Second
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = 50 * 1024 * 1024
	}
	if c.UpsertBatchSize == 0 {
		c.UpsertBatchSize = 256
	}
}

// Validate validates the configuration.
func (c QdrantConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: host required", ErrInvalidConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: invalid port: %d", ErrInvalidConfig, c.Port)
	}
	if c.CollectionName == "" {
		return fmt.Errorf("%w: collection name required", ErrInvalidConfig)
	}
	return nil
}

// ValidateCollectionName validates a collection name against security rules.
// Rejects uppercase, special chars, path traversal, spaces.
func ValidateCollectionName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: collection name cannot be empty", ErrInvalidCollectionName)
	}
	if !collectionNamePattern.MatchString(name) {
		return fmt.Errorf("%w: collection name must match pattern ^[a-z0-9_]{1,64}$, got %q", ErrInvalidCollectionName, name)
	}
	return nil
}

// IsTransientError checks if an error is transient (should retry).
// Returns true for network timeouts and temporary unavailability.
// Returns false for invalid config, not found, permission denied.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}

	st, ok := status.FromError(err)
	if !ok {
		return false
	}

	switch st.Code() {
	case grpccodes.Unavailable, grpccodes.DeadlineExceeded, grpccodes.Aborted, grpccodes.ResourceExhausted:
		return true
	default:
		return false
	}
}

// QdrantStore is a Store implementation using Qdrant's native gRPC client.
//
// Native gRPC transport (port 6334) avoids the HTTP payload limits that
// matter when upserting large ingestion batches, and gives access to the
// scroll cursor needed for full-collection payload enumeration.
type QdrantStore struct {
	client *qdrant.Client
	config QdrantConfig
	logger *zap.Logger
}

// NewQdrantStore creates a new QdrantStore with the given configuration.
//
// The constructor validates configuration, creates the gRPC client and
// performs a health check before returning a ready-to-use store.
func NewQdrantStore(config QdrantConfig, logger *zap.Logger) (*QdrantStore, error) {
	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	if err := ValidateCollectionName(config.CollectionName); err != nil {
		return nil, fmt.Errorf("validating collection name: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if !config.UseTLS {
		logger.Warn("Qdrant gRPC using plaintext (TLS disabled)")
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   config.Host,
		Port:   config.Port,
		UseTLS: config.UseTLS,
		GrpcOptions: []grpc.DialOption{
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(config.MaxMessageSize),
				grpc.MaxCallSendMsgSize(config.MaxMessageSize),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	store := &QdrantStore{
		client: client,
		config: config,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.HealthCheck(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("health check failed: %w", err)
	}

	return store, nil
}

// Close closes the Qdrant gRPC connection.
func (s *QdrantStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// retryOperation retries an operation with exponential backoff. Each
// attempt runs under its own RequestTimeout deadline, so a hung server
// cannot stall the caller indefinitely.
func (s *QdrantStore) retryOperation(ctx context.Context, operationName string, operation func(context.Context) error) error {
	backoff := s.config.RetryBackoff

	for attempt := 0; attempt <= s.config.MaxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
		err := operation(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}

		if !IsTransientError(err) {
			return fmt.Errorf("%s failed (permanent): %w", operationName, err)
		}

		if attempt == s.config.MaxRetries {
			return fmt.Errorf("%s failed after %d retries: %w", operationName, s.config.MaxRetries, err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s canceled: %w", operationName, ctx.Err())
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	return nil
}

// EnsureCollection creates the collection if absent; an existing collection
// is left untouched so repeated runs never destroy stored vectors.
func (s *QdrantStore) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	ctx, span := tracer.Start(ctx, "QdrantStore.EnsureCollection")
	defer span.End()

	span.SetAttributes(
		attribute.String("collection", s.config.CollectionName),
		attribute.Int64("vector_size", int64(vectorSize)),
	)

	var exists bool
	err := s.retryOperation(ctx, "collection_exists", func(ctx context.Context) error {
		var err error
		exists, err = s.client.CollectionExists(ctx, s.config.CollectionName)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("checking collection %s: %w", s.config.CollectionName, err)
	}

	if exists {
		s.logger.Debug("collection exists", zap.String("collection", s.config.CollectionName))
		span.SetStatus(codes.Ok, "exists")
		return nil
	}

	s.logger.Info("creating collection",
		zap.String("collection", s.config.CollectionName),
		zap.Uint64("vector_size", vectorSize))

	err = s.retryOperation(ctx, "create_collection", func(ctx context.Context) error {
		return s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.config.CollectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     vectorSize,
				Distance: qdrant.Distance_Cosine,
			}),
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("creating collection %s: %w", s.config.CollectionName, err)
	}

	span.SetStatus(codes.Ok, "created")
	return nil
}

// Upsert inserts or replaces points by id, in bounded-size batches.
func (s *QdrantStore) Upsert(ctx context.Context, points []Point) error {
	ctx, span := tracer.Start(ctx, "QdrantStore.Upsert")
	defer span.End()

	span.SetAttributes(
		attribute.Int("point_count", len(points)),
		attribute.String("collection", s.config.CollectionName),
	)

	if len(points) == 0 {
		return fmt.Errorf("%w", ErrEmptyPoints)
	}

	for start := 0; start < len(points); start += s.config.UpsertBatchSize {
		end := start + s.config.UpsertBatchSize
		if end > len(points) {
			end = len(points)
		}

		batch := make([]*qdrant.PointStruct, 0, end-start)
		for _, p := range points[start:end] {
			id := p.ID
			if _, err := uuid.Parse(id); err != nil {
				return fmt.Errorf("point id %q is not a valid UUID: %w", id, err)
			}
			batch = append(batch, &qdrant.PointStruct{
				Id:      qdrant.NewIDUUID(id),
				Vectors: qdrant.NewVectors(p.Vector...),
				Payload: map[string]*qdrant.Value{
					"category": {Kind: &qdrant.Value_StringValue{StringValue: p.Payload.Category}},
					"name":     {Kind: &qdrant.Value_StringValue{StringValue: p.Payload.Name}},
					"text":     {Kind: &qdrant.Value_StringValue{StringValue: p.Payload.Text}},
				},
			})
		}

		err := s.retryOperation(ctx, "upsert", func(ctx context.Context) error {
			_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
				CollectionName: s.config.CollectionName,
				Points:         batch,
			})
			return err
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("upserting points to collection %s: %w", s.config.CollectionName, storeErr(err))
		}
	}

	span.SetStatus(codes.Ok, "success")
	return nil
}

// ScrollPayloads enumerates stored payloads without vectors, following the
// pagination cursor until exhausted.
func (s *QdrantStore) ScrollPayloads(ctx context.Context, pageSize uint32, fn func(Payload) error) error {
	ctx, span := tracer.Start(ctx, "QdrantStore.ScrollPayloads")
	defer span.End()

	span.SetAttributes(attribute.String("collection", s.config.CollectionName))

	if pageSize == 0 {
		pageSize = 1000
	}

	// The convenience Scroll wrapper drops the cursor, so use the raw
	// points client which exposes NextPageOffset.
	points := s.client.GetPointsClient()
	var offset *qdrant.PointId
	scanned := 0

	for {
		var resp *qdrant.ScrollResponse
		err := s.retryOperation(ctx, "scroll", func(ctx context.Context) error {
			var err error
			resp, err = points.Scroll(ctx, &qdrant.ScrollPoints{
				CollectionName: s.config.CollectionName,
				Limit:          &pageSize,
				Offset:         offset,
				WithPayload:    qdrant.NewWithPayload(true),
				WithVectors:    qdrant.NewWithVectors(false),
			})
			return err
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("scrolling collection %s: %w", s.config.CollectionName, storeErr(err))
		}

		for _, point := range resp.GetResult() {
			if err := fn(payloadFromQdrant(point.GetPayload())); err != nil {
				return err
			}
			scanned++
		}

		offset = resp.GetNextPageOffset()
		if offset == nil {
			break
		}
	}

	span.SetAttributes(attribute.Int("points_scanned", scanned))
	span.SetStatus(codes.Ok, "success")
	return nil
}

// Query returns up to topK nearest points, optionally filtered by category.
func (s *QdrantStore) Query(ctx context.Context, vector []float32, topK uint64, category string) ([]ScoredSnippet, error) {
	ctx, span := tracer.Start(ctx, "QdrantStore.Query")
	defer span.End()

	span.SetAttributes(
		attribute.String("collection", s.config.CollectionName),
		attribute.Int64("top_k", int64(topK)),
		attribute.String("category", category),
	)

	if topK == 0 {
		return nil, fmt.Errorf("topK must be positive")
	}

	var filter *qdrant.Filter
	if category != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				{
					ConditionOneOf: &qdrant.Condition_Field{
						Field: &qdrant.FieldCondition{
							Key: "category",
							Match: &qdrant.Match{
								MatchValue: &qdrant.Match_Keyword{Keyword: category},
							},
						},
					},
				},
			},
		}
	}

	var results []*qdrant.ScoredPoint
	err := s.retryOperation(ctx, "query", func(ctx context.Context) error {
		res, err := s.client.Query(ctx, &qdrant.QueryPoints{
			CollectionName: s.config.CollectionName,
			Query:          qdrant.NewQuery(vector...),
			Limit:          qdrant.PtrOf(topK),
			WithPayload:    qdrant.NewWithPayload(true),
			Filter:         filter,
		})
		if err != nil {
			return err
		}
		results = res
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("querying collection %s: %w", s.config.CollectionName, storeErr(err))
	}

	snippets := make([]ScoredSnippet, len(results))
	for i, point := range results {
		payload := payloadFromQdrant(point.GetPayload())
		snippets[i] = ScoredSnippet{
			Score:    point.GetScore(),
			Text:     payload.Text,
			Category: payload.Category,
			Name:     payload.Name,
		}
	}

	span.SetAttributes(attribute.Int("results_count", len(snippets)))
	span.SetStatus(codes.Ok, "success")
	return snippets, nil
}

// storeErr maps a gRPC NotFound status to ErrCollectionNotFound so callers
// can distinguish a missing collection from other failures with errors.Is.
func storeErr(err error) error {
	if st, ok := status.FromError(err); ok && st.Code() == grpccodes.NotFound {
		return ErrCollectionNotFound
	}
	return err
}

// payloadFromQdrant extracts the known payload fields, defaulting missing
// or non-string values to "".
func payloadFromQdrant(values map[string]*qdrant.Value) Payload {
	get := func(key string) string {
		if v, ok := values[key]; ok {
			if sv, ok := v.Kind.(*qdrant.Value_StringValue); ok {
				return sv.StringValue
			}
		}
		return ""
	}
	return Payload{
		Category: get("category"),
		Name:     get("name"),
		Text:     get("text"),
	}
}

// Ensure QdrantStore implements Store interface.
var _ Store = (*QdrantStore)(nil)
