package handler

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/polinatih/school-proj/internal/dto"
	"github.com/polinatih/school-proj/internal/service"
	"github.com/polinatih/school-proj/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves Excel downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportStudents GET /api/export/students?classId=
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	var req dto.StudentExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, bindError(err, nil))
		return
	}

	buf, filename, err := h.exportSvc.ExportStudents(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err, "Failed to export students")
		return
	}
	sendWorkbook(c, buf, filename)
}

// ExportResults GET /api/export/results?studentId=&examId=&assignmentId=
func (h *ExportHandler) ExportResults(c *gin.Context) {
	var req dto.ResultExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, bindError(err, nil))
		return
	}

	buf, filename, err := h.exportSvc.ExportResults(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err, "Failed to export results")
		return
	}
	sendWorkbook(c, buf, filename)
}

func sendWorkbook(c *gin.Context, buf *bytes.Buffer, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
