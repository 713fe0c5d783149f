package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChatInput defines the structure of the JSON request body.
type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// Chat is the handler for POST /api/chat. The assistant is optional wiring;
// without an API key the endpoint reports itself unavailable.
func (h *Handlers) Chat(c *gin.Context) {
	if h.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
		return
	}

	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The assistant tailors its answers to the account type.
	userID := c.GetString("userID")
	userType := "consumer"
	if err := h.DB.QueryRow("SELECT user_type FROM users WHERE id = ?", userID).Scan(&userType); err != nil {
		userType = "consumer"
	}

	response, err := h.Assistant.GenerateResponse(c.Request.Context(), input.Message, userType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant unavailable: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": response,
	})
}
