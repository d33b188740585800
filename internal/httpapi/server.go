package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	"github.com/anatolykoptev/go_recruiter/web"
)

// NewRouter builds the HTTP API: resume upload, chat, application tracker,
// company research, and the embedded single-page UI.
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Session-ID"}
	r.Use(cors.New(config))

	r.GET("/", serveUI)
	r.GET("/health", health)
	r.GET("/metrics", metrics)

	api := r.Group("/api/v1")
	{
		api.POST("/resume", uploadResume)
		api.GET("/resume", currentResume)

		api.POST("/chat", postChat)
		api.GET("/chat/history", chatHistory)

		api.GET("/research/:company", researchCompany)
		api.DELETE("/research/:company", invalidateResearch)

		api.GET("/applications", listApplications)
		api.POST("/applications", addApplication)
		api.GET("/applications/stats", applicationStats)
		api.GET("/applications/:id", getApplication)
		api.PATCH("/applications/:id", updateApplication)
		api.DELETE("/applications/:id", deleteApplication)
		api.POST("/applications/:id/followups", addFollowUp)
	}

	return r
}

func serveUI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func metrics(c *gin.Context) {
	c.String(http.StatusOK, engine.FormatMetrics())
}

// sessionID resolves the chat session from header, query, or form field.
func sessionID(c *gin.Context) string {
	if s := c.GetHeader("X-Session-ID"); s != "" {
		return s
	}
	if s := c.Query("session_id"); s != "" {
		return s
	}
	return c.PostForm("session_id")
}
