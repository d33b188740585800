package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	"github.com/anatolykoptev/go_recruiter/internal/engine/assist"
)

// listApplications returns tracked applications, newest first, with optional
// status/company/date-range query filters.
func listApplications(c *gin.Context) {
	input := engine.ApplicationListInput{
		Status:  c.Query("status"),
		Company: c.Query("company"),
		From:    c.Query("from"),
		To:      c.Query("to"),
	}
	apps, err := assist.ListApplications(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(apps), "applications": apps})
}

func addApplication(c *gin.Context) {
	var input engine.ApplicationAddInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	app, err := assist.AddApplication(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app)
}

func getApplication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	app, err := assist.GetApplication(c.Request.Context(), id)
	if err != nil {
		c.JSON(trackerStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app)
}

func updateApplication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var input engine.ApplicationUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	input.ID = id
	app, err := assist.UpdateApplication(c.Request.Context(), input)
	if err != nil {
		c.JSON(trackerStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app)
}

func deleteApplication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := assist.DeleteApplication(c.Request.Context(), id); err != nil {
		c.JSON(trackerStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func addFollowUp(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	app, err := assist.AddFollowUp(c.Request.Context(), id, body.Note)
	if err != nil {
		c.JSON(trackerStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app)
}

func applicationStats(c *gin.Context) {
	stats, err := assist.ApplicationStatistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// trackerStatus maps tracker errors to HTTP status codes.
func trackerStatus(err error) int {
	if errors.Is(err, assist.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
