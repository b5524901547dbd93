package chatfx

import (
	"os"

	"go.uber.org/fx"

	"carconvo/internal/services"
	"carconvo/pkg/utils"
)

var Module = fx.Provide(
	provideChatClient, provideChatService)

func provideChatClient() (utils.ChatClientInterface, error) {
	provider := os.Getenv("AI_PROVIDER")
	if provider == "" {
		provider = "openai"
	}

	var apiKey string
	switch provider {
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
	default:
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	return utils.NewChatClient(provider, apiKey, os.Getenv("AI_MODEL"))
}

func provideChatService(sessions services.SessionServiceInterface, ai utils.ChatClientInterface) services.ChatServiceInterface {
	return services.NewChatService(sessions, ai)
}
