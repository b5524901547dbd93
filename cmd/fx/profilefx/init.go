package profilefx

import (
	"go.uber.org/fx"

	"carconvo/internal/repositories"
	"carconvo/internal/services"
)

var Module = fx.Provide(
	provideProfileService)

func provideProfileService(questionRepo repositories.QuestionRepository) services.ProfileServiceInterface {
	return services.NewProfileService(questionRepo)
}
