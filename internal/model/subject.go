package model

// Subject, table subjects
type Subject struct {
	ID   int    `gorm:"primaryKey"                  json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	Timestamps
	RefCounts

	Teachers []Teacher `gorm:"many2many:subject_teachers" json:"teachers,omitempty"`
	Lessons  []Lesson  `gorm:"foreignKey:SubjectID"       json:"lessons,omitempty"`
}

func (Subject) TableName() string { return "subjects" }

func (s *Subject) Key() interface{} { return s.ID }

// SubjectTeachersLink is the many-to-many write for a subject's teachers.
func SubjectTeachersLink(teacherIDs []string) Link {
	ids := make([]interface{}, len(teacherIDs))
	for i, id := range teacherIDs {
		ids[i] = id
	}
	return Link{Table: "subject_teachers", OwnerColumn: "subject_id", TargetColumn: "teacher_id", TargetIDs: ids}
}

// TeacherSubjectsLink is the many-to-many write for a teacher's subjects.
func TeacherSubjectsLink(subjectIDs []int) Link {
	ids := make([]interface{}, len(subjectIDs))
	for i, id := range subjectIDs {
		ids[i] = id
	}
	return Link{Table: "subject_teachers", OwnerColumn: "teacher_id", TargetColumn: "subject_id", TargetIDs: ids}
}
