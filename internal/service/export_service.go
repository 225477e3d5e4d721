package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/dto"
	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// exportRowLimit caps one workbook.
const exportRowLimit = 10000

// ExportService renders lists as Excel workbooks. Workbooks are returned as
// a buffer; the handler sets the download headers.
type ExportService interface {
	ExportStudents(ctx context.Context, req *dto.StudentExportRequest) (*bytes.Buffer, string, error)
	ExportResults(ctx context.Context, req *dto.ResultExportRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── Students ──────────────────────

var studentHeader = []interface{}{
	"ID", "Username", "Name", "Surname", "Sex", "Birthday", "Class", "Grade", "Parent", "Parent phone", "Email", "Phone",
}

func (s *exportService) ExportStudents(ctx context.Context, req *dto.StudentExportRequest) (*bytes.Buffer, string, error) {
	q := repository.ListQuery{
		Limit:    exportRowLimit,
		Order:    "surname asc, name asc",
		Preloads: []repository.Preload{{Path: "Class"}, {Path: "Grade"}, {Path: "Parent"}},
	}
	filename := "students.xlsx"
	if req.ClassID > 0 {
		q.Conditions = append(q.Conditions, repository.Where("class_id = ?", req.ClassID))
		filename = "students-class-" + strconv.Itoa(req.ClassID) + ".xlsx"
	}

	students, _, err := s.repo.Student.List(ctx, q)
	if err != nil {
		s.logger.Error("export students: list failed", zap.Error(err))
		return nil, "", pkgerrors.Internal("Failed to export students", err)
	}

	rows := make([][]interface{}, 0, len(students))
	for i := range students {
		st := &students[i]
		row := []interface{}{
			st.ID, st.Username, st.Name, st.Surname, st.Sex, st.Birthday.Format("2006-01-02"),
			"", "", "", "", deref(st.Email), deref(st.Phone),
		}
		if st.Class != nil {
			row[6] = st.Class.Name
		}
		if st.Grade != nil {
			row[7] = st.Grade.Level
		}
		if st.Parent != nil {
			row[8] = st.Parent.Name + " " + st.Parent.Surname
			row[9] = st.Parent.Phone
		}
		rows = append(rows, row)
	}

	buf, err := writeWorkbook("Students", studentHeader, rows)
	if err != nil {
		s.logger.Error("export students: write failed", zap.Error(err))
		return nil, "", pkgerrors.Internal("Failed to export students", err)
	}
	return buf, filename, nil
}

// ────────────────────── Results ──────────────────────

var resultHeader = []interface{}{
	"ID", "Student", "Class", "Type", "Title", "Subject", "Score",
}

func (s *exportService) ExportResults(ctx context.Context, req *dto.ResultExportRequest) (*bytes.Buffer, string, error) {
	q := repository.ListQuery{
		Limit: exportRowLimit,
		Order: "id desc",
		Preloads: []repository.Preload{
			{Path: "Student"},
			{Path: "Student.Class"},
			{Path: "Exam"},
			{Path: "Exam.Lesson"},
			{Path: "Exam.Lesson.Subject"},
			{Path: "Assignment"},
			{Path: "Assignment.Lesson"},
			{Path: "Assignment.Lesson.Subject"},
		},
	}
	if req.StudentID != "" {
		q.Conditions = append(q.Conditions, repository.Where("student_id = ?", req.StudentID))
	}
	if req.ExamID > 0 {
		q.Conditions = append(q.Conditions, repository.Where("exam_id = ?", req.ExamID))
	}
	if req.AssignmentID > 0 {
		q.Conditions = append(q.Conditions, repository.Where("assignment_id = ?", req.AssignmentID))
	}

	results, _, err := s.repo.Result.List(ctx, q)
	if err != nil {
		s.logger.Error("export results: list failed", zap.Error(err))
		return nil, "", pkgerrors.Internal("Failed to export results", err)
	}

	rows := make([][]interface{}, 0, len(results))
	for i := range results {
		rows = append(rows, resultRow(&results[i]))
	}

	buf, err := writeWorkbook("Results", resultHeader, rows)
	if err != nil {
		s.logger.Error("export results: write failed", zap.Error(err))
		return nil, "", pkgerrors.Internal("Failed to export results", err)
	}
	return buf, "results.xlsx", nil
}

func resultRow(r *model.Result) []interface{} {
	row := []interface{}{r.ID, "", "", "", "", "", r.Score}
	if r.Student != nil {
		row[1] = r.Student.Name + " " + r.Student.Surname
		if r.Student.Class != nil {
			row[2] = r.Student.Class.Name
		}
	}

	var lesson *model.Lesson
	switch {
	case r.Exam != nil:
		row[3], row[4], lesson = "Exam", r.Exam.Title, r.Exam.Lesson
	case r.Assignment != nil:
		row[3], row[4], lesson = "Assignment", r.Assignment.Title, r.Assignment.Lesson
	}
	if lesson != nil && lesson.Subject != nil {
		row[5] = lesson.Subject.Name
	}
	return row
}

// ── workbook ──

// writeWorkbook renders one sheet with a bold, frozen header row.
func writeWorkbook(sheet string, header []interface{}, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
