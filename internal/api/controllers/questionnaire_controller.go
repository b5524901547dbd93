package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"

	"carconvo/internal/models/domain_models"
	"carconvo/internal/models/request_models"
	"carconvo/internal/models/response_models"
	"carconvo/internal/services"
	"carconvo/pkg/utils"
)

type QuestionnaireController struct {
	profileService services.ProfileServiceInterface
	sessionService services.SessionServiceInterface
}

func NewQuestionnaireController(
	profileService services.ProfileServiceInterface,
	sessionService services.SessionServiceInterface,
) *QuestionnaireController {
	return &QuestionnaireController{
		profileService: profileService,
		sessionService: sessionService,
	}
}

func (q *QuestionnaireController) GetQuestionsHandler(c *gin.Context) {
	utils.RespondSuccess(c, response_models.QuestionsResponse{
		Questions: q.profileService.Questions(),
	}, "")
}

// AnalyzeHandler turns a completed questionnaire into a lifestyle profile
// and opens the chat session for it.
func (q *QuestionnaireController) AnalyzeHandler(c *gin.Context) {
	var req request_models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if len(req.Answers) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "answers is required")
		return
	}

	answers := make(domain_models.AnswerSet, len(req.Answers))
	for id, values := range req.Answers {
		answers[id] = values
	}

	profile, err := q.profileService.BuildProfile(answers)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	sessionID := q.sessionService.Create(profile)

	utils.RespondSuccess(c, response_models.AnalyzeResponse{
		SessionID:          sessionID,
		LifestyleProfile:   profile,
		ProfileDescription: q.profileService.DescribeProfile(profile),
	}, "Lifestyle profile generated")
}
