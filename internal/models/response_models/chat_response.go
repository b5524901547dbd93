package response_models

import "carconvo/internal/models/domain_models"

type ChatResponse struct {
	Response            string                      `json:"response"`
	RecommendedVehicles []domain_models.MatchResult `json:"recommended_cars"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
