package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// Response is the success envelope.
type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success  bool        `json:"success"`
	Error    string      `json:"error"`
	Message  string      `json:"message,omitempty"`
	Required []string    `json:"required,omitempty"`
	Details  interface{} `json:"details,omitempty"`
}

// Pagination list metadata.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes totalPages as ceil(total/limit).
func NewPagination(page, limit int, total int64) *Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(total) / limit
		if int(total)%limit > 0 {
			totalPages++
		}
	}
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// ── success ──

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// OKWithMessage 200 with a message
func OKWithMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Message: message})
}

// Created 201
func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data, Message: message})
}

// OKPage 200 with pagination
func OKPage(c *gin.Context, list interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       list,
		Pagination: NewPagination(page, limit, total),
	})
}

// ── failure ──

// Error writes a failure envelope with the given status.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorResponse{Error: message})
}

// Fail renders a classified application error.
func Fail(c *gin.Context, err *pkgerrors.Error) {
	body := ErrorResponse{
		Error:    err.Message,
		Required: err.Required,
	}
	if len(err.Details) > 0 {
		body.Details = err.Details
	}
	c.JSON(err.Kind.HTTPStatus(), body)
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500. The cause's text is echoed in "message".
func InternalError(c *gin.Context, message string, cause error) {
	body := ErrorResponse{Error: message}
	if cause != nil {
		body.Message = cause.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
