package embedding

import "context"

// Gemini-style task hints; Ollama ignores them.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// EmbeddingProvider is the embedding half of the capability adapter. The
// returned vector length is fixed per deployment and must match the vector
// index dimension; a mismatch is a configuration error, not a runtime one.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}
