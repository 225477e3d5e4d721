package dto

// ── session ──

// SessionResponse GET /api/session
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
	Role          string `json:"role,omitempty"`
	Redirect      string `json:"redirect"`
}

// ── uploads ──

// UploadResponse POST /api/uploads/images
type UploadResponse struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// ── exports ──

// StudentExportRequest GET /api/export/students
type StudentExportRequest struct {
	ClassID int `form:"classId" binding:"omitempty,min=1"`
}

// ResultExportRequest GET /api/export/results
type ResultExportRequest struct {
	StudentID    string `form:"studentId"`
	ExamID       int    `form:"examId"       binding:"omitempty,min=1"`
	AssignmentID int    `form:"assignmentId" binding:"omitempty,min=1"`
}

// ── calendar ──

// CalendarExportRequest GET /api/export/calendar
type CalendarExportRequest struct {
	ClassID int    `form:"classId" binding:"omitempty,min=1"`
	From    string `form:"from"`
}

// CalendarImportRequest POST /api/import/events (multipart, beside "file")
type CalendarImportRequest struct {
	ClassID int `form:"classId" binding:"omitempty,min=1"`
}

// CalendarImportResponse reports what an .ics import created.
type CalendarImportResponse struct {
	Created  int   `json:"created"`
	Skipped  int   `json:"skipped"`
	EventIDs []int `json:"eventIds"`
}
