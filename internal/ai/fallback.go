package ai

import (
	"context"
	"strings"
	"time"

	"project-board-api/internal"

	"go.uber.org/zap"
)

// DefaultModels are tried after the operator model, best quality first.
var DefaultModels = []string{"gemini-2.5-pro", "gemini-2.5-flash", "gemini-2.5-flash-lite"}

const (
	msgInvalidCredential = "Invalid Gemini API key. Create a new key at https://aistudio.google.com/app/apikey and set GEMINI_API_KEY."
	msgQuotaExceeded     = "API quota exceeded. Please check your Google AI Studio usage limits."
	msgContentBlocked    = "Content blocked by Gemini safety filters. Try rephrasing your request."
)

// CandidateModels returns preferred (when set) followed by DefaultModels, without duplicates.
func CandidateModels(preferred string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(m string) {
		m = strings.TrimSpace(m)
		if m == "" {
			return
		}
		if _, ok := seen[m]; ok {
			return
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	add(preferred)
	for _, m := range DefaultModels {
		add(m)
	}
	return out
}

// generate walks the candidate models strictly in order and returns the first
// successful output. Only model-unavailable failures move on to the next model.
func (m *Mediator) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, model := range m.models {
		start := time.Now()
		text, err := m.gen.Generate(ctx, model, prompt, DefaultGenerationConfig)
		if err == nil {
			m.logger.Info("generation succeeded",
				zap.String("model", model),
				zap.Duration("duration", time.Since(start)),
			)
			return text, nil
		}

		lastErr = err
		kind := Classify(err)
		m.logger.Warn("generation attempt failed",
			zap.String("model", model),
			zap.String("kind", kind.String()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)

		switch kind {
		case FailureInvalidCredential:
			return "", internal.WrapErrorf(err, internal.ErrorCodeInvalidCredential, msgInvalidCredential)
		case FailureQuotaExceeded:
			return "", internal.WrapErrorf(err, internal.ErrorCodeQuotaExceeded, msgQuotaExceeded)
		case FailureContentBlocked:
			return "", internal.WrapErrorf(err, internal.ErrorCodeContentBlocked, msgContentBlocked)
		case FailureModelUnavailable:
			continue
		}
		break
	}

	m.logger.Error("all generation attempts failed", zap.Error(lastErr))
	msg := "Unknown error"
	if lastErr != nil {
		msg = lastErr.Error()
	}
	return "", internal.WrapErrorf(lastErr, internal.ErrorCodeGenerationFailed, "Gemini API error: %s", msg)
}
