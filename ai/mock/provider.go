package mock

import (
	"context"

	"github.com/poiesic/embedeval/ai"
)

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	embedder  *MockEmbedder
	generator *MockQuestionGenerator
	closed    bool
}

// NewMockProvider creates a provider with deterministic mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		generator: NewMockQuestionGenerator(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Describe identifies the provider in reports.
func (p *MockProvider) Describe() string {
	return "mock/deterministic"
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close has been called. Test assertion helper.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockEmbedder returns the concrete embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockGenerator returns the concrete generator for test assertions.
func (p *MockProvider) GetMockGenerator() *MockQuestionGenerator {
	return p.generator
}

// MockQuestionGenerator is a test double for ai.QuestionGenerator.
type MockQuestionGenerator struct {
	// GenerateQuestionsFunc is called by GenerateQuestions if set.
	// If nil, uses default deterministic behavior.
	GenerateQuestionsFunc func(ctx context.Context, text string, n int) ([]string, error)

	callCount int
}

// NewMockQuestionGenerator creates a mock generator with default
// deterministic behavior.
func NewMockQuestionGenerator() *MockQuestionGenerator {
	return &MockQuestionGenerator{}
}

// GenerateQuestions returns n deterministic questions derived from the text.
func (g *MockQuestionGenerator) GenerateQuestions(ctx context.Context, text string, n int) ([]string, error) {
	g.callCount++

	if g.GenerateQuestionsFunc != nil {
		return g.GenerateQuestionsFunc(ctx, text, n)
	}

	questions := make([]string, n)
	for i := range questions {
		questions[i] = "what does the passage say about topic " + string(rune('a'+i)) + ": " + truncate(text, 24)
	}
	return questions, nil
}

// CallCount returns the number of times GenerateQuestions was called.
func (g *MockQuestionGenerator) CallCount() int {
	return g.callCount
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
