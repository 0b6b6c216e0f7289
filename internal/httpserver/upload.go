package httpserver

import (
	"net/http"

	"orderdesk/internal/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func uploadHandler(w upload.Writer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "no file provided")
			return
		}
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
		defer f.Close()

		name := upload.SanitizeFilename(header.Filename)
		url, err := w.Write(c.Request.Context(), name, f)
		if err != nil {
			logger.Error("upload failed", zap.String("file", name), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
		logger.Info("file uploaded", zap.String("file", name), zap.Int64("size", header.Size))
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
