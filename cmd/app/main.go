package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"carconvo/cmd/fx/catalogfx"
	"carconvo/cmd/fx/chatfx"
	"carconvo/cmd/fx/controllersfx"
	"carconvo/cmd/fx/matchfx"
	"carconvo/cmd/fx/profilefx"
	"carconvo/cmd/fx/sessionfx"
	"carconvo/internal/api/controllers"
	"carconvo/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		catalogfx.Module,
		profilefx.Module,
		matchfx.Module,
		sessionfx.Module,
		chatfx.Module,
		controllersfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "5000"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	questionnaireController *controllers.QuestionnaireController,
	chatController *controllers.ChatController,
	carsController *controllers.CarsController,
	healthController *controllers.HealthController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, questionnaireController, chatController, carsController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	questionnaireController *controllers.QuestionnaireController,
	chatController *controllers.ChatController,
	carsController *controllers.CarsController,
	healthController *controllers.HealthController) {

	api := r.Group("/api")
	api.GET("/health", healthController.HealthHandler)

	personality := api.Group("/personality")
	personality.GET("/questions", questionnaireController.GetQuestionsHandler)
	personality.POST("/analyze", questionnaireController.AnalyzeHandler)

	api.POST("/chat", chatController.ChatHandler)

	cars := api.Group("/cars")
	cars.GET("/:carId", carsController.GetCarHandler)
	cars.POST("/compare", carsController.CompareHandler)
	cars.POST("/:carId/estimate", carsController.EstimateHandler)
}
