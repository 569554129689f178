package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QuestionGenerator produces synthetic questions answerable from a piece
// of text. Implementations must be thread-safe for concurrent use.
type QuestionGenerator interface {
	// GenerateQuestions asks for n standalone questions whose answer is
	// contained in the given text. Returns fewer than n questions if the
	// model produces fewer; returns an error if generation fails.
	GenerateQuestions(ctx context.Context, text string, n int) ([]string, error)
}

// Provider owns an embedding model and its resources. A provider is an
// explicitly owned resource: callers acquire it, pass it into evaluators,
// and release it with Close when the run is over. Hosted-API and
// locally-loaded implementations are interchangeable behind this
// interface; callers select one by configuration, never by type
// inspection.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Describe returns a short human-readable description of the backing
	// model, suitable for run records and reports.
	Describe() string

	// Close releases resources held by the provider, including any
	// underlying native model handle. After Close is called, the
	// provider and its embedder should not be used.
	Close() error
}
