package matchfx

import (
	"go.uber.org/fx"

	"carconvo/internal/repositories"
	"carconvo/internal/services"
)

var Module = fx.Provide(
	provideScoringWeights, provideMatchService)

func provideScoringWeights() services.ScoringWeights {
	return services.DefaultScoringWeights()
}

func provideMatchService(vehicleRepo repositories.VehicleRepository, weights services.ScoringWeights) (services.MatchServiceInterface, error) {
	return services.NewMatchService(vehicleRepo, weights)
}
