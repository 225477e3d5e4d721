package dto

import "github.com/polinatih/school-proj/internal/model"

// ── subjects ──

// CreateSubjectRequest POST /api/subjects. TeacherIDs are connected to the
// new subject.
type CreateSubjectRequest struct {
	Name       string   `json:"name"       binding:"required,max=100"`
	TeacherIDs []string `json:"teacherIds"`
}

func (r CreateSubjectRequest) Build() (*model.Subject, []model.Link, error) {
	var links []model.Link
	if len(r.TeacherIDs) > 0 {
		links = append(links, model.SubjectTeachersLink(r.TeacherIDs))
	}
	return &model.Subject{Name: r.Name}, links, nil
}

// UpdateSubjectRequest PUT /api/subjects/:id. A supplied TeacherIDs replaces
// the whole teacher set.
type UpdateSubjectRequest struct {
	Name       *string   `json:"name"       binding:"omitempty,min=1,max=100"`
	TeacherIDs *[]string `json:"teacherIds"`
}

func (r UpdateSubjectRequest) Apply(s *model.Subject) ([]model.Link, error) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	var links []model.Link
	if r.TeacherIDs != nil {
		links = append(links, model.SubjectTeachersLink(*r.TeacherIDs))
	}
	return links, nil
}
