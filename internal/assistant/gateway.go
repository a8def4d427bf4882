// Package assistant is the boundary to the external language model. It
// answers free-text questions about the directory and suggests entity
// records for a URL.
//
// The two operations fail differently. Ask never fails: any problem becomes
// a displayable fallback message. InspectURL always fails loudly so the
// caller can fall back to manual entry.
package assistant

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ajitpratap0/ecodir/internal/models"
)

// Fallback answers returned by Ask.
const (
	FallbackUnconfigured = "Demo Mode: API key missing. Configure ANTHROPIC_API_KEY to use the live assistant."
	FallbackUnavailable  = "I'm having trouble connecting to the knowledge base right now. Please try again later."
	FallbackEmpty        = "I couldn't generate a response at this time."
)

// IsFallback reports whether answer is one of the fallback messages rather
// than model output.
func IsFallback(answer string) bool {
	switch answer {
	case FallbackUnconfigured, FallbackUnavailable, FallbackEmpty:
		return true
	}
	return false
}

var (
	// ErrNotConfigured is returned by InspectURL when no API key is set.
	ErrNotConfigured = errors.New("assistant: API key missing")

	// ErrInspectFailed is returned by InspectURL when the call fails or the
	// model output is not a valid entity record.
	ErrInspectFailed = errors.New("assistant: URL inspection failed")
)

// Gateway is the external assistant.
type Gateway interface {
	// Ask answers question using snapshot as the directory context. It
	// always returns displayable text.
	Ask(ctx context.Context, question string, snapshot []models.EntitySummary) string

	// InspectURL suggests an entity record for url. hint may be nil.
	InspectURL(ctx context.Context, url string, hint *models.Category) (*models.EntityDraft, error)

	// Configured reports whether the gateway can reach a live model.
	Configured() bool
}

// New returns a Claude-backed gateway, or the unconfigured variant when
// apiKey is empty.
func New(apiKey, model string, maxTokens int64, logger *slog.Logger, opts ...option.RequestOption) Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	if apiKey == "" {
		logger.Warn("assistant: no API key configured, running in demo mode")
		return Unconfigured{}
	}
	return NewClaudeGateway(apiKey, model, maxTokens, logger, opts...)
}

// Unconfigured is the gateway used without credentials.
type Unconfigured struct{}

// Ask returns the demo-mode message.
func (Unconfigured) Ask(context.Context, string, []models.EntitySummary) string {
	return FallbackUnconfigured
}

// InspectURL always fails with ErrNotConfigured.
func (Unconfigured) InspectURL(context.Context, string, *models.Category) (*models.EntityDraft, error) {
	return nil, ErrNotConfigured
}

// Configured returns false.
func (Unconfigured) Configured() bool { return false }
