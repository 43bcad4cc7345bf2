package handler

import (
	"errors"
	"strings"

	"main/dto"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

const (
	maxChatMessageLength = 2000
	chatHistoryLimit     = 50
)

// ChatHandler runs one turn of the task assistant: load history, call the
// completer, execute any tool calls, persist both sides of the exchange.
func ChatHandler(c *gin.Context, agent *usecase.AgentService, convs *repository.ConversationRepo) {
	if agent.Completer == nil {
		utils.ServiceUnavailable(c, "Chat service not configured")
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		utils.UnprocessableEntity(c, "Message cannot be empty")
		return
	}
	if len(message) > maxChatMessageLength {
		utils.UnprocessableEntity(c, "Message exceeds maximum length of 2000")
		return
	}

	userID := c.GetString("user_id")

	var conv *model.Conversation
	if req.ConversationID != 0 {
		existing, err := convs.GetByID(c, userID, req.ConversationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				utils.NotFound(c, "Conversation not found")
				return
			}
			utils.InternalError(c, "Internal server error")
			return
		}
		conv = existing
	} else {
		conv = &model.Conversation{UserID: userID}
		if err := convs.Create(c, conv); err != nil {
			utils.InternalError(c, "Internal server error")
			return
		}
	}

	stored, err := convs.History(c, conv.ID, chatHistoryLimit)
	if err != nil {
		utils.InternalError(c, "Internal server error")
		return
	}

	history := make([]usecase.ChatMessage, 0, len(stored)+1)
	for _, m := range stored {
		history = append(history, usecase.ChatMessage{Role: m.Role, Content: m.Content})
	}
	history = append(history, usecase.ChatMessage{Role: "user", Content: message})

	if err := convs.AddMessage(c, &model.Message{
		ConversationID: conv.ID,
		UserID:         userID,
		Role:           "user",
		Content:        message,
	}); err != nil {
		utils.InternalError(c, "Internal server error")
		return
	}

	reply, toolCalls, err := agent.Run(c, userID, history)
	if err != nil {
		utils.TrackError("handler", "chat")
		utils.ServiceUnavailable(c, "Chat service unavailable")
		return
	}

	if err := convs.AddMessage(c, &model.Message{
		ConversationID: conv.ID,
		UserID:         userID,
		Role:           "assistant",
		Content:        reply,
	}); err != nil {
		utils.InternalError(c, "Internal server error")
		return
	}
	_ = convs.Touch(c, conv.ID)

	utils.Success(c, dto.ChatResponse{
		ConversationID: conv.ID,
		Response:       reply,
		ToolCalls:      toolCalls,
	})
}
