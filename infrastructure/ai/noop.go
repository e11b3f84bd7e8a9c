package ai

import (
	"context"

	"naphtalai-backend/application/ports"
)

// NoopAssistant stands in when the AI feature is disabled
// Every call resolves with a failure result, never an error
type NoopAssistant struct{}

// NewNoopAssistant creates a disabled assistant
func NewNoopAssistant() *NoopAssistant {
	return &NoopAssistant{}
}

// Complete reports that the assistant is unavailable
func (a *NoopAssistant) Complete(ctx context.Context, req ports.AssistantRequest) ports.AssistantResult {
	return ports.AssistantResult{ErrorMessage: "assistant is not configured"}
}

var _ ports.Assistant = (*NoopAssistant)(nil)
