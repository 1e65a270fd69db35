package embedding

import "context"

// EmbeddingProvider defines the interface for generating text embeddings.
// Query-time and ingest-time text must go through the same provider so both
// live in the same embedding space.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}
