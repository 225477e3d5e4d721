package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/polinatih/school-proj/internal/dto"
	"github.com/polinatih/school-proj/internal/service"
	"github.com/polinatih/school-proj/pkg/response"
)

const icsContentType = "text/calendar; charset=utf-8"

// CalendarHandler serves the iCalendar feed and .ics imports.
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// ExportCalendar GET /api/export/calendar?classId=&from=
func (h *CalendarHandler) ExportCalendar(c *gin.Context) {
	var req dto.CalendarExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, bindError(err, nil))
		return
	}

	body, filename, err := h.calendarSvc.ExportCalendar(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err, "Failed to export calendar")
		return
	}
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, icsContentType, body)
}

// ImportEvents POST /api/import/events (multipart field "file", optional classId)
func (h *CalendarHandler) ImportEvents(c *gin.Context) {
	var req dto.CalendarImportRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, bindError(err, nil))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required")
		return
	}
	if fh.Size > service.MaxCalendarSize {
		response.BadRequest(c, "File exceeds the 5MB limit")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "Invalid file")
		return
	}
	defer f.Close()

	resp, err := h.calendarSvc.ImportEvents(c.Request.Context(), &req, f)
	if err != nil {
		renderError(c, err, "Failed to import events")
		return
	}
	response.Created(c, resp, "Events imported successfully")
}
