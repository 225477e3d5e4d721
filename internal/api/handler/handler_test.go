package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polinatih/school-proj/internal/dto"
	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/service"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
	"github.com/polinatih/school-proj/pkg/identity"
	"github.com/polinatih/school-proj/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock ResourceService ──

type mockResourceService[T any] struct {
	meta service.Meta

	listItems []T
	listTotal int64
	listErr   error
	lastList  *dto.ListRequest

	getResult *T
	getErr    error

	createResult *T
	createErr    error
	lastCreate   dto.Creator[T]

	updateResult *T
	updateErr    error
	lastUpdateID string
	lastPatch    dto.Patcher[T]

	deleteErr error
}

func (m *mockResourceService[T]) Meta() service.Meta { return m.meta }

func (m *mockResourceService[T]) List(_ context.Context, req *dto.ListRequest) ([]T, int64, error) {
	m.lastList = req
	return m.listItems, m.listTotal, m.listErr
}

func (m *mockResourceService[T]) Get(_ context.Context, _ string) (*T, error) {
	return m.getResult, m.getErr
}

func (m *mockResourceService[T]) Create(_ context.Context, req dto.Creator[T]) (*T, error) {
	m.lastCreate = req
	return m.createResult, m.createErr
}

func (m *mockResourceService[T]) Update(_ context.Context, id string, req dto.Patcher[T]) (*T, error) {
	m.lastUpdateID, m.lastPatch = id, req
	return m.updateResult, m.updateErr
}

func (m *mockResourceService[T]) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ═══════════════════════════════════════════════════════════
// Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) *bytes.Buffer {
	b, _ := json.Marshal(v)
	return bytes.NewBuffer(b)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return resp
}

// errorBody mirrors response.ErrorResponse with decoded details.
type errorBody struct {
	Success  bool                   `json:"success"`
	Error    string                 `json:"error"`
	Message  string                 `json:"message"`
	Required []string               `json:"required"`
	Details  map[string]interface{} `json:"details"`
}

func parseError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v (%s)", err, w.Body.String())
	}
	return resp
}

var classMeta = service.Meta{Name: "Class", Plural: "classes", Required: []string{"name", "capacity", "gradeId"}}

func setupClassRouter(svc *mockResourceService[model.Class]) *gin.Engine {
	h := NewResourceHandler[model.Class, dto.CreateClassRequest, dto.UpdateClassRequest](svc)
	r := gin.New()
	r.GET("/api/classes", h.List)
	r.GET("/api/classes/:id", h.Get)
	r.POST("/api/classes", h.Create)
	r.PUT("/api/classes/:id", h.Update)
	r.DELETE("/api/classes/:id", h.Delete)
	return r
}

func do(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// ResourceHandler
// ═══════════════════════════════════════════════════════════

// ── List ──

func TestResourceHandler_List_Pagination(t *testing.T) {
	svc := &mockResourceService[model.Class]{
		meta:      classMeta,
		listItems: []model.Class{{ID: 1, Name: "1A"}, {ID: 2, Name: "1B"}},
		listTotal: 23,
	}
	r := setupClassRouter(svc)

	w := do(r, http.MethodGet, "/api/classes?page=2&limit=10&search=1&gradeId=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(t, w)
	if !resp.Success || resp.Pagination == nil {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	if p := resp.Pagination; p.Page != 2 || p.Limit != 10 || p.Total != 23 || p.TotalPages != 3 {
		t.Errorf("pagination = %+v", p)
	}
	if svc.lastList.Search != "1" || svc.lastList.Filter("gradeId") != "3" {
		t.Errorf("list request = %+v", svc.lastList)
	}
	if _, ok := svc.lastList.Filters["page"]; ok {
		t.Error("page must not be passed as a filter")
	}
}

func TestResourceHandler_List_DefaultsOnGarbage(t *testing.T) {
	svc := &mockResourceService[model.Class]{meta: classMeta}
	r := setupClassRouter(svc)

	w := do(r, http.MethodGet, "/api/classes?page=abc&limit=-5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	p := parseResponse(t, w).Pagination
	if p.Page != 1 || p.Limit != 10 || p.TotalPages != 0 {
		t.Errorf("pagination = %+v", p)
	}
}

func TestResourceHandler_List_InternalError(t *testing.T) {
	svc := &mockResourceService[model.Class]{
		meta:    classMeta,
		listErr: pkgerrors.Internal("Failed to fetch classes", errors.New("connection refused")),
	}
	r := setupClassRouter(svc)

	w := do(r, http.MethodGet, "/api/classes", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	resp := parseError(t, w)
	if resp.Error != "Failed to fetch classes" || resp.Message != "connection refused" {
		t.Errorf("body = %+v", resp)
	}
}

// ── Get ──

func TestResourceHandler_Get_NotFound(t *testing.T) {
	svc := &mockResourceService[model.Class]{meta: classMeta, getErr: pkgerrors.NotFound("Class not found")}
	r := setupClassRouter(svc)

	w := do(r, http.MethodGet, "/api/classes/9", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := parseError(t, w); resp.Success || resp.Error != "Class not found" {
		t.Errorf("body = %+v", resp)
	}
}

// ── Create ──

func TestResourceHandler_Create_Success(t *testing.T) {
	svc := &mockResourceService[model.Class]{meta: classMeta, createResult: &model.Class{ID: 7, Name: "3C", Capacity: 30}}
	r := setupClassRouter(svc)

	w := do(r, http.MethodPost, "/api/classes", jsonBody(map[string]interface{}{
		"name": "3C", "capacity": "30", "gradeId": 3,
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(t, w)
	if resp.Message != "Class created successfully" {
		t.Errorf("message = %s", resp.Message)
	}
	req, ok := svc.lastCreate.(dto.CreateClassRequest)
	if !ok {
		t.Fatalf("service got %T", svc.lastCreate)
	}
	if req.Capacity.Int() != 30 || req.GradeID.Int() != 3 {
		t.Errorf("numeric strings not accepted: %+v", req)
	}
}

func TestResourceHandler_Create_MissingFields(t *testing.T) {
	svc := &mockResourceService[model.Class]{meta: classMeta}
	r := setupClassRouter(svc)

	w := do(r, http.MethodPost, "/api/classes", jsonBody(map[string]interface{}{"name": "3C"}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	resp := parseError(t, w)
	if resp.Error != "Missing required fields" {
		t.Errorf("error = %s", resp.Error)
	}
	if len(resp.Required) != 3 || resp.Required[2] != "gradeId" {
		t.Errorf("required = %v", resp.Required)
	}
	missing, _ := resp.Details["missing"].([]interface{})
	if len(missing) != 2 || missing[0] != "capacity" || missing[1] != "gradeId" {
		t.Errorf("missing = %v", resp.Details["missing"])
	}
	if svc.lastCreate != nil {
		t.Error("service must not be called")
	}
}

func TestResourceHandler_Create_EmptyBody(t *testing.T) {
	svc := &mockResourceService[model.Class]{meta: classMeta}
	r := setupClassRouter(svc)

	w := do(r, http.MethodPost, "/api/classes", bytes.NewBuffer(nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := parseError(t, w); resp.Error != "Missing required fields" {
		t.Errorf("error = %s", resp.Error)
	}
}

func TestResourceHandler_Create_MalformedJSON(t *testing.T) {
	svc := &mockResourceService[model.Class]{meta: classMeta}
	r := setupClassRouter(svc)

	w := do(r, http.MethodPost, "/api/classes", bytes.NewBufferString(`{"name":`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := parseError(t, w); resp.Error != "Invalid request body" {
		t.Errorf("error = %s", resp.Error)
	}
}

func TestResourceHandler_Create_Conflict(t *testing.T) {
	svc := &mockResourceService[model.Class]{meta: classMeta, createErr: pkgerrors.Conflict("Class with this name already exists")}
	r := setupClassRouter(svc)

	w := do(r, http.MethodPost, "/api/classes", jsonBody(map[string]interface{}{"name": "1A", "capacity": 20, "gradeId": 1}))
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := parseError(t, w); resp.Error != "Class with this name already exists" {
		t.Errorf("error = %s", resp.Error)
	}
}

// ── Update ──

func TestResourceHandler_Update_Patch(t *testing.T) {
	svc := &mockResourceService[model.Class]{meta: classMeta, updateResult: &model.Class{ID: 4, Name: "4D"}}
	r := setupClassRouter(svc)

	w := do(r, http.MethodPut, "/api/classes/4", bytes.NewBufferString(`{"supervisorId":null}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(t, w); resp.Message != "Class updated successfully" {
		t.Errorf("message = %s", resp.Message)
	}
	patch := svc.lastPatch.(dto.UpdateClassRequest)
	if svc.lastUpdateID != "4" || !patch.SupervisorID.Null || patch.Name != nil {
		t.Errorf("patch = %+v id=%s", patch, svc.lastUpdateID)
	}
}

func TestResourceHandler_Update_Validation(t *testing.T) {
	svc := &mockResourceService[model.Class]{meta: classMeta, updateErr: pkgerrors.Validation("Capacity must be a positive number")}
	r := setupClassRouter(svc)

	w := do(r, http.MethodPut, "/api/classes/4", jsonBody(map[string]interface{}{"capacity": 0}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

// ── Delete ──

func TestResourceHandler_Delete(t *testing.T) {
	svc := &mockResourceService[model.Class]{meta: classMeta}
	r := setupClassRouter(svc)

	w := do(r, http.MethodDelete, "/api/classes/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Message != "Class deleted successfully" || resp.Data != nil {
		t.Errorf("body = %s", w.Body.String())
	}

	svc.deleteErr = pkgerrors.Conflict("Cannot delete class with existing students or lessons").
		WithDetail("dependents", map[string]int64{"students": 2})
	w = do(r, http.MethodDelete, "/api/classes/1", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := parseError(t, w); resp.Details["dependents"] == nil {
		t.Errorf("details = %+v", resp.Details)
	}
}

// ═══════════════════════════════════════════════════════════
// SessionHandler
// ═══════════════════════════════════════════════════════════

func TestSessionHandler(t *testing.T) {
	h := NewSessionHandler()

	tests := []struct {
		name     string
		userID   string
		role     identity.Role
		wantAuth bool
		wantPath string
	}{
		{"anonymous", "", "", false, "/sign-in"},
		{"teacher", "user_1", identity.RoleTeacher, true, "/teacher"},
		{"admin", "user_2", identity.RoleAdmin, true, "/admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/api/session", func(c *gin.Context) {
				if tt.userID != "" {
					c.Set(CtxUserID, tt.userID)
					c.Set(CtxRole, tt.role)
				}
				h.GetSession(c)
			})
			w := do(r, http.MethodGet, "/api/session", nil)

			var body struct {
				Data dto.SessionResponse `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Data.Authenticated != tt.wantAuth || body.Data.Redirect != tt.wantPath {
				t.Errorf("session = %+v", body.Data)
			}
			if tt.wantAuth && body.Data.Role != tt.role.String() {
				t.Errorf("role = %s", body.Data.Role)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// UploadHandler
// ═══════════════════════════════════════════════════════════

type mockUploadService struct {
	err error
}

func (m *mockUploadService) UploadImage(_ context.Context, fh *multipart.FileHeader) (*dto.UploadResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.UploadResponse{Key: "images/" + fh.Filename, URL: "http://files.local/images/" + fh.Filename, Size: fh.Size}, nil
}

func multipartBody(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()
	return &body, w.FormDataContentType()
}

func TestUploadHandler_UploadImage(t *testing.T) {
	svc := &mockUploadService{}
	h := NewUploadHandler(svc)
	r := gin.New()
	r.POST("/api/uploads/images", h.UploadImage)

	body, ct := multipartBody(t, "file", "a.png", []byte("png"))
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/images", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	body, ct = multipartBody(t, "other", "a.png", []byte("png"))
	req = httptest.NewRequest(http.MethodPost, "/api/uploads/images", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing file: status = %d", w.Code)
	}

	svc.err = pkgerrors.Unavailable("File storage is not configured")
	body, ct = multipartBody(t, "file", "a.png", []byte("png"))
	req = httptest.NewRequest(http.MethodPost, "/api/uploads/images", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("unconfigured storage: status = %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler
// ═══════════════════════════════════════════════════════════

type mockExportService struct {
	lastStudents *dto.StudentExportRequest
}

func (m *mockExportService) ExportStudents(_ context.Context, req *dto.StudentExportRequest) (*bytes.Buffer, string, error) {
	m.lastStudents = req
	return bytes.NewBufferString("xlsx"), "students.xlsx", nil
}

func (m *mockExportService) ExportResults(_ context.Context, _ *dto.ResultExportRequest) (*bytes.Buffer, string, error) {
	return nil, "", pkgerrors.Internal("Failed to export results", errors.New("disk full"))
}

func TestExportHandler(t *testing.T) {
	svc := &mockExportService{}
	h := NewExportHandler(svc)
	r := gin.New()
	r.GET("/api/export/students", h.ExportStudents)
	r.GET("/api/export/results", h.ExportResults)

	w := do(r, http.MethodGet, "/api/export/students?classId=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("content type = %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename*=UTF-8''students.xlsx" {
		t.Errorf("disposition = %s", cd)
	}
	if svc.lastStudents.ClassID != 2 {
		t.Errorf("classId = %d", svc.lastStudents.ClassID)
	}

	w = do(r, http.MethodGet, "/api/export/students?classId=x", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad classId: status = %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/export/results", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := parseError(t, w); resp.Message != "disk full" {
		t.Errorf("message = %s", resp.Message)
	}
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler
// ═══════════════════════════════════════════════════════════

type mockCalendarService struct {
	lastExport *dto.CalendarExportRequest
	lastImport *dto.CalendarImportRequest
	imported   string
}

func (m *mockCalendarService) ExportCalendar(_ context.Context, req *dto.CalendarExportRequest) ([]byte, string, error) {
	m.lastExport = req
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), "calendar.ics", nil
}

func (m *mockCalendarService) ImportEvents(_ context.Context, req *dto.CalendarImportRequest, r io.Reader) (*dto.CalendarImportResponse, error) {
	m.lastImport = req
	b, _ := io.ReadAll(r)
	m.imported = string(b)
	return &dto.CalendarImportResponse{Created: 1, EventIDs: []int{7}}, nil
}

func TestCalendarHandler_Export(t *testing.T) {
	svc := &mockCalendarService{}
	h := NewCalendarHandler(svc)
	r := gin.New()
	r.GET("/api/export/calendar", h.ExportCalendar)

	w := do(r, http.MethodGet, "/api/export/calendar?classId=4&from=2025-03-01", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != icsContentType {
		t.Errorf("content type = %s", ct)
	}
	if svc.lastExport.ClassID != 4 || svc.lastExport.From != "2025-03-01" {
		t.Errorf("request = %+v", svc.lastExport)
	}
}

func TestCalendarHandler_Import(t *testing.T) {
	svc := &mockCalendarService{}
	h := NewCalendarHandler(svc)
	r := gin.New()
	r.POST("/api/import/events", h.ImportEvents)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("classId", "2")
	part, _ := mw.CreateFormFile("file", "term.ics")
	part.Write([]byte("BEGIN:VCALENDAR"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/import/events", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if svc.lastImport.ClassID != 2 {
		t.Errorf("classId = %d", svc.lastImport.ClassID)
	}
	if svc.imported != "BEGIN:VCALENDAR" {
		t.Errorf("imported = %q", svc.imported)
	}

	empty, ct := multipartBody(t, "other", "term.ics", []byte("x"))
	req = httptest.NewRequest(http.MethodPost, "/api/import/events", empty)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing file: status = %d", w.Code)
	}
}
