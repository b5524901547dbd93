package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiChatClient implements ChatClientInterface using Google's Gemini
// models.
type GeminiChatClient struct {
	client *genai.Client
	model  string
}

func NewGeminiChatClient(apiKey, model string) (*GeminiChatClient, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiChatClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiChatClient) GenerateReply(ctx context.Context, system string, history []ChatMessage, maxTokens int) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.6)
	m.SetTopP(0.9)
	m.SetMaxOutputTokens(int32(maxTokens))
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	if len(history) == 0 {
		return "", fmt.Errorf("gemini: history must contain the user message")
	}

	cs := m.StartChat()
	for _, msg := range history[:len(history)-1] {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(history[len(history)-1].Content))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content")
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (c *GeminiChatClient) ExtractSignals(ctx context.Context, message string) (ChatSignals, error) {
	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so no brace-matching cleanup is needed
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)
	m.SetTopP(0.5)
	m.SetTopK(20)

	prompt := signalExtractionPrompt + "\n\nUser message:\n" + message

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ChatSignals{}, fmt.Errorf("gemini extract: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ChatSignals{}, fmt.Errorf("gemini extract: no content")
	}

	content := stripCodeFence(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	var signals ChatSignals
	if err := json.Unmarshal([]byte(content), &signals); err != nil {
		log.Printf("Gemini signal extraction returned invalid JSON: %v", err)
		return ChatSignals{}, fmt.Errorf("gemini extract: %w", err)
	}
	return signals, nil
}

func (c *GeminiChatClient) CheckConnection(ctx context.Context) bool {
	m := c.client.GenerativeModel(c.model)
	_, err := m.CountTokens(ctx, genai.Text("ping"))
	if err != nil {
		log.Printf("Gemini connection check failed: %v", err)
		return false
	}
	return true
}

// Close closes the Gemini client.
func (c *GeminiChatClient) Close() error {
	return c.client.Close()
}
