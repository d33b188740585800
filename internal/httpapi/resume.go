package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
	"github.com/anatolykoptev/go_recruiter/internal/engine/assist"
)

// defaultUploadLimit applies when no upload limit is configured.
const defaultUploadLimit = 5 << 20

// uploadResume accepts a multipart resume file, extracts its text, parses it
// into a structured record, and binds the record to the session.
func uploadResume(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field: " + err.Error()})
		return
	}
	defer file.Close()

	limit := engine.Cfg.MaxUploadBytes
	if limit <= 0 {
		limit = defaultUploadLimit
	}
	// Read one byte past the limit so oversize is detectable.
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read upload: " + err.Error()})
		return
	}
	if int64(len(data)) > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds upload limit"})
		return
	}

	var record *engine.ResumeRecord
	err = engine.TrackOperation(c.Request.Context(), "resume_parse", func(ctx context.Context) error {
		var perr error
		record, perr = assist.ParseResume(ctx, header.Filename, data)
		return perr
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	assist.SetResume(sessionID(c), record)
	c.JSON(http.StatusOK, gin.H{
		"skills":     record.Skills,
		"experience": len(record.Experience),
		"education":  len(record.Education),
	})
}

// currentResume returns the session's parsed resume record.
func currentResume(c *gin.Context) {
	record, ok := assist.CurrentResume(sessionID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": assist.ErrNoResume.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}
