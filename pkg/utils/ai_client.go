package utils

import (
	"context"
	"fmt"
	"strings"

	"carconvo/internal/models/domain_models"
)

// ChatMessage is one conversation message in provider-neutral form.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatSignals is the structured output of the AI collaborator's free-text
// extraction: a budget number and filter hints pulled out of a user message.
// The recommendation core treats this as opaque, already-validated input and
// never parses natural language itself.
type ChatSignals struct {
	Budget  *int                      `json:"budget"`
	Filters domain_models.FilterHints `json:"filters"`
}

// ChatClientInterface is implemented by the OpenAI and Gemini clients.
type ChatClientInterface interface {
	// GenerateReply produces the assistant's next message. history must end
	// with the latest user turn.
	GenerateReply(ctx context.Context, system string, history []ChatMessage, maxTokens int) (string, error)
	// ExtractSignals pulls budget and filter hints out of one user message.
	ExtractSignals(ctx context.Context, message string) (ChatSignals, error)
	CheckConnection(ctx context.Context) bool
	Close() error
}

const signalExtractionPrompt = `You extract structured vehicle-shopping signals from a single user message.
Return JSON only, matching exactly this schema (omit or null anything the message does not state):
{
  "budget": 30000,
  "filters": {
    "body_type": "SUV",
    "exclude_body_types": ["Coupe"],
    "fuel_preference": "hybrid",
    "drivetrain": "AWD",
    "min_mpg": 30,
    "min_horsepower": 200,
    "min_seating": 5,
    "max_price": 30000
  }
}
Rules:
- "budget" and "max_price" are whole dollar amounts ("under $40k" means 40000 for both).
- "fuel_preference" is only ever "hybrid" or "electric".
- Never invent constraints the user did not express.
- Return JSON only. No comments, no markdown.`

// stripCodeFence removes a markdown code fence if the model wrapped its JSON
// in one despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// NewChatClient Factory function to create either an OpenAI or Gemini client
// based on config.
func NewChatClient(provider, apiKey, model string) (ChatClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIChatClient(apiKey, model), nil
	case "gemini":
		return NewGeminiChatClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
