package model

// Result score of a student on exactly one exam or assignment, table results
type Result struct {
	ID           int    `gorm:"primaryKey"        json:"id"`
	Score        int    `gorm:"not null"          json:"score"`
	StudentID    string `gorm:"type:text;not null" json:"studentId"`
	ExamID       *int   `json:"examId"`
	AssignmentID *int   `json:"assignmentId"`
	Timestamps
	RefCounts

	Student    *Student    `gorm:"foreignKey:StudentID"    json:"student,omitempty"`
	Exam       *Exam       `gorm:"foreignKey:ExamID"       json:"exam,omitempty"`
	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
}

func (Result) TableName() string { return "results" }

func (r *Result) Key() interface{} { return r.ID }
