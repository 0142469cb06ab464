package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"cleverai/api/internal/llm"
	"cleverai/api/internal/models"
	"cleverai/api/internal/service"
)

const notAnArrayMessage = "Invalid request format. 'messages' must be an array."

type chatRequest struct {
	Messages json.RawMessage `json:"messages"`
}

type chatPayload struct {
	Messages []models.ChatMessage `json:"messages" binding:"dive"`
}

func (h HandlerSet) Chat(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil || !json.Valid(body) {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	// any valid JSON that is not an object carries no messages field
	var req chatRequest
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &req); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	raw := bytes.TrimSpace(req.Messages)
	if len(raw) == 0 || raw[0] != '[' {
		respondError(c, http.StatusBadRequest, notAnArrayMessage)
		return
	}

	var payload chatPayload
	if err := json.Unmarshal(raw, &payload.Messages); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format. Each message needs a string 'role' and 'content'.")
		return
	}
	if err := binding.Validator.ValidateStruct(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	text, err := h.chatService.Complete(c.Request.Context(), sess.UserID, payload.Messages)
	if err != nil {
		if errors.Is(err, service.ErrEmptyConversation) {
			respondError(c, http.StatusBadRequest, "Invalid request format. 'messages' must not be empty.")
			return
		}

		message := "Failed to get a response from OpenAI"
		var providerErr *llm.ProviderError
		if errors.As(err, &providerErr) && providerErr.Message != "" {
			message = providerErr.Message
		}
		respondError(c, http.StatusInternalServerError, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    text,
	})
}
