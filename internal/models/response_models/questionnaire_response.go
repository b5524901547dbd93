package response_models

import "carconvo/internal/models/domain_models"

type AnalyzeResponse struct {
	SessionID          string                      `json:"session_id"`
	LifestyleProfile   domain_models.ProfileVector `json:"lifestyle_profile"`
	ProfileDescription string                      `json:"profile_description"`
}

type QuestionsResponse struct {
	Questions []domain_models.Question `json:"questions"`
}
