package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/polinatih/school-proj/internal/dto"
	"github.com/polinatih/school-proj/internal/service"
	"github.com/polinatih/school-proj/pkg/response"
)

// ResourceHandler serves the five CRUD routes of one entity. C and U are
// the entity's create and update request types.
type ResourceHandler[T any, C dto.Creator[T], U dto.Patcher[T]] struct {
	svc  service.ResourceService[T]
	meta service.Meta
}

// NewResourceHandler creates a ResourceHandler.
func NewResourceHandler[T any, C dto.Creator[T], U dto.Patcher[T]](svc service.ResourceService[T]) *ResourceHandler[T, C, U] {
	return &ResourceHandler[T, C, U]{svc: svc, meta: svc.Meta()}
}

// reservedParams are list parameters that are not filters.
var reservedParams = map[string]bool{"page": true, "limit": true, "search": true}

// List GET /api/<plural>?page=&limit=&search=&<filters>
func (h *ResourceHandler[T, C, U]) List(c *gin.Context) {
	req := listRequest(c)

	items, total, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		renderError(c, err, "Failed to fetch "+h.meta.Plural)
		return
	}

	response.OKPage(c, items, total, req.GetPage(), req.GetLimit())
}

// Get GET /api/<plural>/:id
func (h *ResourceHandler[T, C, U]) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, "Failed to fetch "+h.meta.Label())
		return
	}

	response.OK(c, rec)
}

// Create POST /api/<plural>
func (h *ResourceHandler[T, C, U]) Create(c *gin.Context) {
	var req C
	if err := bindCreateJSON(c, &req); err != nil {
		response.Fail(c, bindError(err, h.meta.Required))
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		renderError(c, err, "Failed to create "+h.meta.Label())
		return
	}

	response.Created(c, rec, h.meta.Name+" created successfully")
}

// Update PUT|PATCH /api/<plural>/:id
func (h *ResourceHandler[T, C, U]) Update(c *gin.Context) {
	var req U
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, bindError(err, nil))
		return
	}

	rec, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		renderError(c, err, "Failed to update "+h.meta.Label())
		return
	}

	response.OKWithMessage(c, rec, h.meta.Name+" updated successfully")
}

// Delete DELETE /api/<plural>/:id
func (h *ResourceHandler[T, C, U]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err, "Failed to delete "+h.meta.Label())
		return
	}

	response.OKWithMessage(c, nil, h.meta.Name+" deleted successfully")
}

// ── helpers ──

// bindJSON decodes the body into obj and validates it. An empty body is
// treated as "{}" so missing fields are reported as such.
func bindJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(obj)
	}
	return err
}

// bindCreateJSON is bindJSON for create bodies. Top-level fields sent as
// blank strings, as HTML forms do for empty inputs, count as not supplied.
func bindCreateJSON(c *gin.Context, obj interface{}) error {
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return binding.Validator.ValidateStruct(obj)
	}

	var fields map[string]json.RawMessage
	if json.Unmarshal(body, &fields) == nil && fields != nil {
		for k, raw := range fields {
			var s string
			if json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) == "" {
				delete(fields, k)
			}
		}
		if body, err = json.Marshal(fields); err != nil {
			return err
		}
	}
	return binding.JSON.BindBody(body, obj)
}

// listRequest reads paging, search and filters. Malformed paging values
// fall back to the defaults.
func listRequest(c *gin.Context) *dto.ListRequest {
	req := &dto.ListRequest{
		Page:    atoi(c.Query("page")),
		Limit:   atoi(c.Query("limit")),
		Search:  c.Query("search"),
		Filters: make(map[string]string),
	}
	for k, v := range c.Request.URL.Query() {
		if reservedParams[k] || len(v) == 0 {
			continue
		}
		req.Filters[k] = v[0]
	}
	return req
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
