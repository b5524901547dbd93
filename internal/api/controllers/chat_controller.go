package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"

	"carconvo/internal/models/request_models"
	"carconvo/internal/services"
	"carconvo/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{chatService: chatService}
}

func (ch *ChatController) ChatHandler(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.SessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.Message == "" {
		utils.RespondError(c, http.StatusBadRequest, "message is required")
		return
	}

	resp, err := ch.chatService.Chat(c.Request.Context(), req.SessionID, req.Message, req.Budget)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}
