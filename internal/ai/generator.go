package ai

import "context"

// GenerationConfig is the sampling configuration sent with every attempt.
type GenerationConfig struct {
	Temperature     float32
	TopK            float32
	TopP            float32
	MaxOutputTokens int32
}

// DefaultGenerationConfig is used for summaries and answers alike.
var DefaultGenerationConfig = GenerationConfig{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 1024,
}

// Generator produces text from a prompt with a named model.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, cfg GenerationConfig) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, model, prompt string, cfg GenerationConfig) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, model, prompt string, cfg GenerationConfig) (string, error) {
	return f(ctx, model, prompt, cfg)
}
