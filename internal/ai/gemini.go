package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// Gemini generates text through the Gemini API.
type Gemini struct {
	client *genai.Client
}

// NewGemini creates a Gemini API client. An empty key yields a generator whose
// every call fails with an invalid credential error, so the server can still start.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return &Gemini{}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}
	return &Gemini{client: client}, nil
}

// Generate implements Generator.
func (g *Gemini) Generate(ctx context.Context, model, prompt string, cfg GenerationConfig) (string, error) {
	if g.client == nil {
		return "", &ProviderError{Kind: FailureInvalidCredential, Err: errors.New("API key is not set")}
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(cfg.Temperature),
		TopK:            genai.Ptr(cfg.TopK),
		TopP:            genai.Ptr(cfg.TopP),
		MaxOutputTokens: cfg.MaxOutputTokens,
	})
	if err != nil {
		return "", typedError(err)
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", &ProviderError{
			Kind: FailureContentBlocked,
			Err:  fmt.Errorf("prompt blocked: %s", fb.BlockReason),
		}
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", &ProviderError{Kind: FailureContentBlocked, Err: errors.New("response blocked: SAFETY")}
	}
	return resp.Text(), nil
}

// typedError classifies API errors by status code where the code alone is
// unambiguous; everything else is left to message classification.
func typedError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) || apiErrPtr == nil {
			return err
		}
		apiErr = *apiErrPtr
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED":
		return &ProviderError{Kind: FailureQuotaExceeded, Err: err}
	case apiErr.Code == http.StatusNotFound || apiErr.Status == "NOT_FOUND":
		return &ProviderError{Kind: FailureModelUnavailable, Err: err}
	}
	return err
}
