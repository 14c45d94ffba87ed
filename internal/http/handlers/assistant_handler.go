// Assistant HTTP handler.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pestward/go-booking-backend/internal/services"
)

// AssistantRequest is the JSON payload for asking the assistant a question.
type AssistantRequest struct {
	Message string `json:"message" binding:"required"`
}

// AssistantResponse carries the canned reply and its match confidence.
type AssistantResponse struct {
	Reply string  `json:"reply"`
	Score float64 `json:"score"`
}

// AskAssistant answers a customer question with the best canned response,
// falling back to a generic reply when nothing matches well enough.
func (h *Handlers) AskAssistant(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	reply, score, err := h.assistSvc.Reply(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "message must not be empty")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not answer message")
		return
	}
	ok(c, http.StatusOK, AssistantResponse{Reply: reply, Score: score})
}
