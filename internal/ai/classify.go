package ai

import (
	"errors"
	"strings"
)

// FailureKind is the provider-independent category of a failed attempt.
type FailureKind int

const (
	// FailureOther aborts the fallback loop with a generic generation error.
	FailureOther FailureKind = iota
	FailureInvalidCredential
	FailureQuotaExceeded
	FailureContentBlocked
	// FailureModelUnavailable moves on to the next candidate model.
	FailureModelUnavailable
)

func (k FailureKind) String() string {
	switch k {
	case FailureInvalidCredential:
		return "invalid_credential"
	case FailureQuotaExceeded:
		return "quota_exceeded"
	case FailureContentBlocked:
		return "content_blocked"
	case FailureModelUnavailable:
		return "model_unavailable"
	}
	return "other"
}

// ProviderError lets an adapter report an already classified failure.
type ProviderError struct {
	Kind FailureKind
	Err  error
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }

// Classify maps a failed attempt to a FailureKind. Typed adapter errors win;
// otherwise the provider message is inspected.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureOther
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return classifyMessage(err.Error())
}

func classifyMessage(msg string) FailureKind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "API key"):
		return FailureInvalidCredential
	case strings.Contains(lower, "quota"):
		return FailureQuotaExceeded
	case strings.Contains(lower, "safety"):
		return FailureContentBlocked
	case strings.Contains(msg, "not found"),
		strings.Contains(msg, "not supported"),
		strings.Contains(msg, "unsupported"),
		strings.Contains(msg, "404"),
		strings.Contains(lower, "permission"):
		return FailureModelUnavailable
	}
	return FailureOther
}
