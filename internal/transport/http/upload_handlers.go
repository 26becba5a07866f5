package http

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UploadHandlers turns uploaded files into attachment payloads that clients
// embed in outgoing messages.
type UploadHandlers struct {
	maxUploadBytes int64
	log            *zerolog.Logger
}

// NewUploadHandlers creates a new upload handlers instance.
func NewUploadHandlers(maxUploadBytes int64, logger *zerolog.Logger) *UploadHandlers {
	return &UploadHandlers{
		maxUploadBytes: maxUploadBytes,
		log:            logger,
	}
}

// UploadResponse carries the attachment fields the client sends back inside
// a message unit. The media type is sniffed from content, not taken from
// the client's headers.
type UploadResponse struct {
	FileData string `json:"file_data"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
}

// Upload handles a multipart file upload.
// POST /api/upload
func (h *UploadHandlers) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file field is required"})
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error().Err(err).Str("file", fileHeader.Filename).Msg("failed to open upload")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		h.log.Error().Err(err).Str("file", fileHeader.Filename).Msg("failed to read upload")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file too large"})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		FileData: base64.StdEncoding.EncodeToString(data),
		FileName: fileHeader.Filename,
		FileType: mimetype.Detect(data).String(),
	})
}
