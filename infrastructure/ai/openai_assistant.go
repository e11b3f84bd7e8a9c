package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"naphtalai-backend/application/ports"
)

// Config holds the assistant provider configuration
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Model:   "gpt-4o-mini",
		Timeout: 30 * time.Second,
	}
}

const (
	chatSystemPrompt = "You are a research assistant helping analyze an investigation canvas " +
		"of documents, notes and extracted entities. Answer concisely and cite which nodes " +
		"your answer draws on."

	extractSystemPrompt = "Extract the significant entities (people, places, organizations, " +
		"concepts, dates) and the connections between them from the provided text. Respond " +
		"with a single JSON object of the form " +
		`{"entities":[{"name":"","type":"","context":"","confidence":0.0}],` +
		`"connections":[{"from":"","to":"","relationship":"","confidence":0.0}]}.`

	connectSystemPrompt = "Given a summary of a canvas graph, suggest which nodes should be " +
		"connected and why. Respond with a single JSON object of the form " +
		`{"connections":[{"from":"","to":"","relationship":"","confidence":0.0}]}.`

	analyzeSystemPrompt = "Interpret the given symbol or phrase in the context of the " +
		"provided documents. Note historical, cultural or occult significance where relevant."
)

// OpenAIAssistant adapts the OpenAI chat completion API to the
// assistant port. It always returns a result: transport failures and
// malformed model output degrade to a failed or empty result rather
// than an error
type OpenAIAssistant struct {
	client *openai.Client
	config *Config
	logger *zap.Logger
}

// NewOpenAIAssistant creates a new OpenAI-backed assistant
func NewOpenAIAssistant(cfg *Config, logger *zap.Logger) *OpenAIAssistant {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIAssistant{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		logger: logger,
	}
}

// Complete runs one assistant call
func (a *OpenAIAssistant) Complete(ctx context.Context, req ports.AssistantRequest) ports.AssistantResult {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.config.Model,
		Messages: a.buildMessages(req),
	})
	if err != nil {
		a.logger.Warn("Assistant call failed",
			zap.String("mode", string(req.Mode)),
			zap.Error(err))
		return ports.AssistantResult{ErrorMessage: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return ports.AssistantResult{ErrorMessage: "empty completion response"}
	}

	text := resp.Choices[0].Message.Content
	result := ports.AssistantResult{Success: true, Text: text}

	switch req.Mode {
	case ports.ModeExtractEntities, ports.ModeConnect:
		entities, connections := parseStructured(text)
		result.Entities = entities
		result.Connections = connections
	}
	return result
}

func (a *OpenAIAssistant) buildMessages(req ports.AssistantRequest) []openai.ChatCompletionMessage {
	var system string
	switch req.Mode {
	case ports.ModeExtractEntities:
		system = extractSystemPrompt
	case ports.ModeConnect:
		system = connectSystemPrompt
	case ports.ModeAnalyzeSymbol:
		system = analyzeSystemPrompt
	default:
		system = chatSystemPrompt
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
	}

	if req.Graph != nil {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf("Canvas graph: %d nodes, %d edges. Node labels: %s",
				req.Graph.NodeCount, req.Graph.EdgeCount, strings.Join(req.Graph.Labels, ", ")),
		})
	}
	for _, doc := range req.Context {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: "Document:\n" + doc,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Query,
	})
	return messages
}

type structuredPayload struct {
	Entities    []ports.ExtractedEntityData     `json:"entities"`
	Connections []ports.ExtractedConnectionData `json:"connections"`
}

// parseStructured pulls the structured payload out of a completion that
// may wrap JSON in free text. Parse failures degrade to an empty pair
func parseStructured(text string) ([]ports.ExtractedEntityData, []ports.ExtractedConnectionData) {
	blob, ok := ExtractJSONObject(text)
	if !ok {
		return nil, nil
	}

	var payload structuredPayload
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return nil, nil
	}
	return payload.Entities, payload.Connections
}

// ExtractJSONObject returns the first balanced top-level {...} substring
// Braces inside JSON strings are skipped so wrapped prose cannot
// unbalance the scan
func ExtractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

var _ ports.Assistant = (*OpenAIAssistant)(nil)
