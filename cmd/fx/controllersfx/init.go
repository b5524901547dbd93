package controllersfx

import (
	"go.uber.org/fx"

	"carconvo/internal/api/controllers"
)

var Module = fx.Provide(
	controllers.NewQuestionnaireController,
	controllers.NewChatController,
	controllers.NewCarsController,
	controllers.NewHealthController,
)
