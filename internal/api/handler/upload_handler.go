package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/polinatih/school-proj/internal/service"
	"github.com/polinatih/school-proj/pkg/response"
)

// UploadHandler accepts profile image uploads.
type UploadHandler struct {
	uploadSvc service.UploadService
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// UploadImage POST /api/uploads/images (multipart field "file")
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}

	resp, err := h.uploadSvc.UploadImage(c.Request.Context(), file)
	if err != nil {
		renderError(c, err, "Failed to upload file")
		return
	}

	response.Created(c, resp, "File uploaded successfully")
}
