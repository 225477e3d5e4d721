package handler

import (
	"github.com/polinatih/school-proj/internal/dto"
	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/service"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Grade        *ResourceHandler[model.Grade, dto.CreateGradeRequest, dto.UpdateGradeRequest]
	Admin        *ResourceHandler[model.Admin, dto.CreateAdminRequest, dto.UpdateAdminRequest]
	Teacher      *ResourceHandler[model.Teacher, dto.CreateTeacherRequest, dto.UpdateTeacherRequest]
	Subject      *ResourceHandler[model.Subject, dto.CreateSubjectRequest, dto.UpdateSubjectRequest]
	Class        *ResourceHandler[model.Class, dto.CreateClassRequest, dto.UpdateClassRequest]
	Parent       *ResourceHandler[model.Parent, dto.CreateParentRequest, dto.UpdateParentRequest]
	Student      *ResourceHandler[model.Student, dto.CreateStudentRequest, dto.UpdateStudentRequest]
	Lesson       *ResourceHandler[model.Lesson, dto.CreateLessonRequest, dto.UpdateLessonRequest]
	Exam         *ResourceHandler[model.Exam, dto.CreateExamRequest, dto.UpdateExamRequest]
	Assignment   *ResourceHandler[model.Assignment, dto.CreateAssignmentRequest, dto.UpdateAssignmentRequest]
	Result       *ResourceHandler[model.Result, dto.CreateResultRequest, dto.UpdateResultRequest]
	Attendance   *ResourceHandler[model.Attendance, dto.CreateAttendanceRequest, dto.UpdateAttendanceRequest]
	Event        *ResourceHandler[model.Event, dto.CreateEventRequest, dto.UpdateEventRequest]
	Announcement *ResourceHandler[model.Announcement, dto.CreateAnnouncementRequest, dto.UpdateAnnouncementRequest]

	Session  *SessionHandler
	Export   *ExportHandler
	Calendar *CalendarHandler
	Upload   *UploadHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Grade:        NewResourceHandler[model.Grade, dto.CreateGradeRequest, dto.UpdateGradeRequest](svc.Grade),
		Admin:        NewResourceHandler[model.Admin, dto.CreateAdminRequest, dto.UpdateAdminRequest](svc.Admin),
		Teacher:      NewResourceHandler[model.Teacher, dto.CreateTeacherRequest, dto.UpdateTeacherRequest](svc.Teacher),
		Subject:      NewResourceHandler[model.Subject, dto.CreateSubjectRequest, dto.UpdateSubjectRequest](svc.Subject),
		Class:        NewResourceHandler[model.Class, dto.CreateClassRequest, dto.UpdateClassRequest](svc.Class),
		Parent:       NewResourceHandler[model.Parent, dto.CreateParentRequest, dto.UpdateParentRequest](svc.Parent),
		Student:      NewResourceHandler[model.Student, dto.CreateStudentRequest, dto.UpdateStudentRequest](svc.Student),
		Lesson:       NewResourceHandler[model.Lesson, dto.CreateLessonRequest, dto.UpdateLessonRequest](svc.Lesson),
		Exam:         NewResourceHandler[model.Exam, dto.CreateExamRequest, dto.UpdateExamRequest](svc.Exam),
		Assignment:   NewResourceHandler[model.Assignment, dto.CreateAssignmentRequest, dto.UpdateAssignmentRequest](svc.Assignment),
		Result:       NewResourceHandler[model.Result, dto.CreateResultRequest, dto.UpdateResultRequest](svc.Result),
		Attendance:   NewResourceHandler[model.Attendance, dto.CreateAttendanceRequest, dto.UpdateAttendanceRequest](svc.Attendance),
		Event:        NewResourceHandler[model.Event, dto.CreateEventRequest, dto.UpdateEventRequest](svc.Event),
		Announcement: NewResourceHandler[model.Announcement, dto.CreateAnnouncementRequest, dto.UpdateAnnouncementRequest](svc.Announcement),

		Session:  NewSessionHandler(),
		Export:   NewExportHandler(svc.Export),
		Calendar: NewCalendarHandler(svc.Calendar),
		Upload:   NewUploadHandler(svc.Upload),
	}
}
