package images

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes guards the multipart upload before decoding.
const maxUploadBytes = 20 << 20

type Handler struct {
	log *slog.Logger
}

func NewHandler(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// Upload accepts a multipart "image" file and responds with the compressed
// data URI the dashboard stores on category and product documents.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		h.log.Error("open upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer f.Close()

	// cap what reaches the decoder even if the declared part size lies;
	// a truncated image fails to decode below
	res, err := Compress(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported or corrupt image"})
		return
	}

	c.JSON(http.StatusOK, res)
}
