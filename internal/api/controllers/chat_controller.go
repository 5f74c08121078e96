package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcare/internal/models/request_models"
	"mindcare/internal/services"
	"mindcare/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{chatService: chatService}
}

// Chat godoc
// @Summary Talk to the companion
// @Description Forward a message and recent history to the configured chat model
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Message and history"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /chat [post]
func (h *ChatController) Chat(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format: message is required")
		return
	}

	reply, err := h.chatService.Complete(c.Request.Context(), p, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reply, "Reply generated")
}

// Analyze godoc
// @Summary Classify sentiment
// @Description Score text between -1 and 1; falls back to a keyword heuristic when the model is unavailable
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.AnalyzeRequest true "Text to analyze"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /chat/analyze [post]
func (h *ChatController) Analyze(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request_models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format: text is required")
		return
	}

	result, err := h.chatService.Analyze(c.Request.Context(), p, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Sentiment analyzed")
}
