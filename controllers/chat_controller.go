// controllers/chat_controller.go
package controllers

import (
	"log"
	"net/http"

	"flexitrip-backend/services"
	"flexitrip-backend/utils"

	"github.com/gin-gonic/gin"
)

type ChatPayload struct {
	Message string `json:"message" binding:"required"`

	TripID      *uint                     `json:"trip_id,omitempty"`
	TripContext *services.TripPlanRequest `json:"trip_context,omitempty"`
}

type ChatController struct {
	AI      *services.AIService
	ChatSvc *services.ChatService
}

func NewChatController(ai *services.AIService, chatSvc *services.ChatService) *ChatController {
	return &ChatController{AI: ai, ChatSvc: chatSvc}
}

// Chat answers a travel question and appends the exchange to the chat
// log. A chat-log write failure does not fail the reply.
func (ctrl *ChatController) Chat(c *gin.Context) {
	var payload ChatPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	reply := ctrl.AI.Chat(c.Request.Context(), payload.Message, payload.TripContext)

	if err := ctrl.ChatSvc.SaveMessage(payload.Message, reply.Response, reply.Suggestions, payload.TripID); err != nil {
		log.Printf("warning: chat log write failed: %v", err)
	}

	utils.JSONSuccess(c, http.StatusOK, reply)
}

// History returns the most recent chat messages.
func (ctrl *ChatController) History(c *gin.Context) {
	messages, err := ctrl.ChatSvc.History(0)
	if err != nil {
		log.Printf("ChatHistory error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to retrieve chat history")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, messages)
}
