package embedding

import "context"

// Task types for backends that embed documents and queries differently.
const (
	TaskDocument = "RETRIEVAL_DOCUMENT"
	TaskQuery    = "RETRIEVAL_QUERY"
)

// Provider generates a single embedding vector for a text.
type Provider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}
