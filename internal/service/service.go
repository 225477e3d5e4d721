package service

import (
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
)

// Service aggregates every service of the API.
type Service struct {
	Grade        ResourceService[model.Grade]
	Admin        ResourceService[model.Admin]
	Teacher      ResourceService[model.Teacher]
	Subject      ResourceService[model.Subject]
	Class        ResourceService[model.Class]
	Parent       ResourceService[model.Parent]
	Student      ResourceService[model.Student]
	Lesson       ResourceService[model.Lesson]
	Exam         ResourceService[model.Exam]
	Assignment   ResourceService[model.Assignment]
	Result       ResourceService[model.Result]
	Attendance   ResourceService[model.Attendance]
	Event        ResourceService[model.Event]
	Announcement ResourceService[model.Announcement]

	Export   ExportService
	Calendar CalendarService
	Upload   UploadService
}

// NewService wires the services over repo. objects may be nil.
func NewService(repo *repository.Repository, objects ObjectStore, logger *zap.Logger) *Service {
	return &Service{
		Grade:        NewGradeService(repo, logger),
		Admin:        NewAdminService(repo, logger),
		Teacher:      NewTeacherService(repo, logger),
		Subject:      NewSubjectService(repo, logger),
		Class:        NewClassService(repo, logger),
		Parent:       NewParentService(repo, logger),
		Student:      NewStudentService(repo, logger),
		Lesson:       NewLessonService(repo, logger),
		Exam:         NewExamService(repo, logger),
		Assignment:   NewAssignmentService(repo, logger),
		Result:       NewResultService(repo, logger),
		Attendance:   NewAttendanceService(repo, logger),
		Event:        NewEventService(repo, logger),
		Announcement: NewAnnouncementService(repo, logger),
		Export:       NewExportService(repo, logger),
		Calendar:     NewCalendarService(repo, logger),
		Upload:       NewUploadService(objects, logger),
	}
}
