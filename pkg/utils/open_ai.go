package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIChatClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIChatClient(apiKey, model string) *OpenAIChatClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIChatClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIChatClient) GenerateReply(ctx context.Context, system string, history []ChatMessage, maxTokens int) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: 0.6,
		TopP:        0.9,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIChatClient) ExtractSignals(ctx context.Context, message string) (ChatSignals, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: signalExtractionPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   300,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return ChatSignals{}, fmt.Errorf("openai extract: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ChatSignals{}, fmt.Errorf("openai extract: empty response")
	}

	var signals ChatSignals
	content := stripCodeFence(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &signals); err != nil {
		log.Printf("OpenAI signal extraction returned invalid JSON: %v", err)
		return ChatSignals{}, fmt.Errorf("openai extract: %w", err)
	}
	return signals, nil
}

func (c *OpenAIChatClient) CheckConnection(ctx context.Context) bool {
	_, err := c.client.ListModels(ctx)
	if err != nil {
		log.Printf("OpenAI connection check failed: %v", err)
		return false
	}
	return true
}

func (c *OpenAIChatClient) Close() error { return nil }
