package catalogfx

import (
	"os"

	"go.uber.org/fx"

	"carconvo/internal/infra"
	"carconvo/internal/repositories"
)

var Module = fx.Provide(
	provideQuestionRepository, provideVehicleRepository)

func provideQuestionRepository() (repositories.QuestionRepository, error) {
	path := os.Getenv("QUESTIONS_DATA_PATH")
	if path == "" {
		path = "data/personality_questions.json"
	}
	return repositories.NewJSONQuestionRepository(path)
}

func provideVehicleRepository() (repositories.VehicleRepository, error) {
	if os.Getenv("CATALOG_SOURCE") == "postgres" {
		return repositories.NewPostgresVehicleRepository(infra.InitPostgresql())
	}

	path := os.Getenv("CARS_DATA_PATH")
	if path == "" {
		path = "data/cars.json"
	}
	return repositories.NewJSONVehicleRepository(path)
}
