package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"time"

	"carconvo/internal/models/response_models"
	"carconvo/internal/repositories"
	"carconvo/pkg/utils"
)

type HealthController struct {
	vehicleRepo  repositories.VehicleRepository
	questionRepo repositories.QuestionRepository
	ai           utils.ChatClientInterface
}

func NewHealthController(
	vehicleRepo repositories.VehicleRepository,
	questionRepo repositories.QuestionRepository,
	ai utils.ChatClientInterface,
) *HealthController {
	return &HealthController{
		vehicleRepo:  vehicleRepo,
		questionRepo: questionRepo,
		ai:           ai,
	}
}

func (h *HealthController) HealthHandler(c *gin.Context) {
	aiStatus := "disconnected"
	status := "degraded"
	if h.ai.CheckConnection(c.Request.Context()) {
		aiStatus = "connected"
		status = "healthy"
	}

	c.JSON(http.StatusOK, utils.APIResponse{
		Status: "success",
		Code:   http.StatusOK,
		Data: response_models.HealthResponse{
			Status:    status,
			Timestamp: time.Now().Format(time.RFC3339),
			Services: map[string]string{
				"http":             "running",
				"ai":               aiStatus,
				"vehicle_catalog":  "loaded",
				"question_catalog": "loaded",
			},
		},
	})
}
