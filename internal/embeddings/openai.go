package embeddings

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// OpenAI model constants.
const (
	ModelTextEmbedding3Large = "text-embedding-3-large"
	ModelTextEmbedding3Small = "text-embedding-3-small"

	maxLargeDimensions = 3072

	openaiRateLimiterBurst = 5

	// defaultBatchSize chunks a large batch into separate API requests.
	defaultBatchSize = 32
)

// ErrOpenAIShortResponse indicates the API returned fewer vectors than
// inputs.
var ErrOpenAIShortResponse = errors.New("openai returned fewer embeddings than inputs")

// OpenAIProvider vectorizes batches through the OpenAI embeddings API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	dimensions  int
	batchSize   int
	rateLimiter *rate.Limiter
	available   bool
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey     string
	Model      string // "text-embedding-3-large" or "text-embedding-3-small"
	Dimensions int    // output dimensions (3072 max for large, 1536 for small)
	RateLimit  int    // requests per second
	BatchSize  int    // texts per API request
}

// NewOpenAIProvider creates an OpenAI embedding provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	if cfg.Model == "" {
		cfg.Model = ModelTextEmbedding3Small
	}

	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}

	if cfg.RateLimit == 0 {
		cfg.RateLimit = 1
	}

	if cfg.BatchSize == 0 {
		cfg.BatchSize = defaultBatchSize
	}

	return &OpenAIProvider{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		dimensions:  cfg.Dimensions,
		batchSize:   cfg.BatchSize,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), openaiRateLimiterBurst),
		available:   cfg.APIKey != "",
	}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() ProviderName {
	return ProviderOpenAI
}

// Priority implements Provider.
func (p *OpenAIProvider) Priority() int {
	return PriorityPrimary
}

// Dimensions implements Provider.
func (p *OpenAIProvider) Dimensions() int {
	return p.dimensions
}

// IsAvailable reports whether an API key is configured.
func (p *OpenAIProvider) IsAvailable() bool {
	return p.available
}

// Vectorize embeds texts in input order, chunking the batch into
// rate-limited API requests.
func (p *OpenAIProvider) Vectorize(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += p.batchSize {
		end := start + p.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		chunk, err := p.vectorizeChunk(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}

		vectors = append(vectors, chunk...)
	}

	return vectors, nil
}

func (p *OpenAIProvider) vectorizeChunk(ctx context.Context, texts []string) ([][]float32, error) {
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req := openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(p.model),
	}

	// text-embedding-3-large supports dimension reduction via API parameter.
	if p.model == ModelTextEmbedding3Large && p.dimensions > 0 && p.dimensions < maxLargeDimensions {
		req.Dimensions = p.dimensions
	}

	resp, err := p.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}

	if len(resp.Data) < len(texts) {
		return nil, ErrOpenAIShortResponse
	}

	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = resp.Data[i].Embedding
	}

	return vectors, nil
}
