package handlers

import (
	"net/http"

	"project-board-api/internal/ai"

	"github.com/gin-gonic/gin"
)

// SummarizeRequest represents the request payload for POST /api/ai/summarize
type SummarizeRequest struct {
	ProjectID string `json:"projectId"`
}

// AskRequest represents the request payload for POST /api/ai/ask
type AskRequest struct {
	ProjectID string `json:"projectId"`
	Question  string `json:"question"`
}

type summaryResponse struct {
	Success bool `json:"success"`
	ai.Summary
}

type answerResponse struct {
	Success bool `json:"success"`
	ai.Answer
}

// Summarize handles POST /api/ai/summarize
func (h *Handler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderBindError(c, err)
		return
	}

	summary, err := h.ai.Summarize(c.Request.Context(), req.ProjectID)
	if err != nil {
		h.renderError(c, "Failed to generate summary", err)
		return
	}
	c.JSON(http.StatusOK, summaryResponse{Success: true, Summary: summary})
}

// Ask handles POST /api/ai/ask
func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderBindError(c, err)
		return
	}

	answer, err := h.ai.Ask(c.Request.Context(), req.ProjectID, req.Question)
	if err != nil {
		h.renderError(c, "Failed to answer question", err)
		return
	}
	c.JSON(http.StatusOK, answerResponse{Success: true, Answer: answer})
}
