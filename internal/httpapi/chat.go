package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	"github.com/anatolykoptev/go_recruiter/internal/engine/assist"
)

// postChat runs one chat turn.
func postChat(c *gin.Context) {
	var input engine.ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	if input.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if input.SessionID == "" {
		input.SessionID = sessionID(c)
	}
	c.JSON(http.StatusOK, assist.Respond(c.Request.Context(), input))
}

// chatHistory returns the session's recent messages in chronological order.
func chatHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	msgs, err := assist.History(c.Request.Context(), sessionID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// researchCompany returns the research bundle for a company.
func researchCompany(c *gin.Context) {
	company := c.Param("company")
	refresh := c.Query("refresh") == "true"

	var bundle *engine.ResearchBundle
	var err error
	if refresh {
		bundle, err = assist.RefreshCompany(c.Request.Context(), company)
	} else {
		bundle, err = assist.ResearchCompany(c.Request.Context(), company)
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// invalidateResearch drops the cached research bundle for a company so the
// next lookup re-runs the research.
func invalidateResearch(c *gin.Context) {
	assist.InvalidateCompany(c.Request.Context(), c.Param("company"))
	c.Status(http.StatusNoContent)
}
