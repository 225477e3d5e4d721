package dto

import (
	"github.com/google/uuid"

	"github.com/polinatih/school-proj/internal/model"
)

// ── students ──

// CreateStudentRequest POST /api/students
type CreateStudentRequest struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"  binding:"required,max=100"`
	Name      string   `json:"name"      binding:"required,max=100"`
	Surname   string   `json:"surname"   binding:"required,max=100"`
	Sex       string   `json:"sex"       binding:"required"`
	Birthday  string   `json:"birthday"  binding:"required"`
	ParentID  string   `json:"parentId"  binding:"required"`
	ClassID   *FlexInt `json:"classId"   binding:"required"`
	GradeID   *FlexInt `json:"gradeId"   binding:"required"`
	Email     *string  `json:"email"     binding:"omitempty,max=255"`
	Phone     *string  `json:"phone"     binding:"omitempty,max=50"`
	Address   *string  `json:"address"   binding:"omitempty,max=255"`
	Img       *string  `json:"img"`
	BloodType *string  `json:"bloodType" binding:"omitempty,max=10"`
}

func (r CreateStudentRequest) Build() (*model.Student, []model.Link, error) {
	sex, err := ParseSex(r.Sex)
	if err != nil {
		return nil, nil, err
	}
	birthday, err := ParseTime("birthday", r.Birthday)
	if err != nil {
		return nil, nil, err
	}

	s := &model.Student{
		ID:        r.ID,
		Username:  r.Username,
		Name:      r.Name,
		Surname:   r.Surname,
		Sex:       sex,
		Birthday:  birthday,
		ParentID:  r.ParentID,
		ClassID:   r.ClassID.Int(),
		GradeID:   r.GradeID.Int(),
		Email:     nonEmpty(r.Email),
		Phone:     nonEmpty(r.Phone),
		Address:   nonEmpty(r.Address),
		Img:       nonEmpty(r.Img),
		BloodType: nonEmpty(r.BloodType),
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return s, nil, nil
}

// UpdateStudentRequest PUT /api/students/:id
type UpdateStudentRequest struct {
	Username  *string          `json:"username" binding:"omitempty,min=1,max=100"`
	Name      *string          `json:"name"     binding:"omitempty,min=1,max=100"`
	Surname   *string          `json:"surname"  binding:"omitempty,min=1,max=100"`
	Sex       *string          `json:"sex"`
	Birthday  *string          `json:"birthday"`
	ParentID  *string          `json:"parentId" binding:"omitempty,min=1"`
	ClassID   *FlexInt         `json:"classId"`
	GradeID   *FlexInt         `json:"gradeId"`
	Email     Optional[string] `json:"email"`
	Phone     Optional[string] `json:"phone"`
	Address   Optional[string] `json:"address"`
	Img       Optional[string] `json:"img"`
	BloodType Optional[string] `json:"bloodType"`
}

func (r UpdateStudentRequest) Apply(s *model.Student) ([]model.Link, error) {
	if r.Username != nil {
		s.Username = *r.Username
	}
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Surname != nil {
		s.Surname = *r.Surname
	}
	if r.Sex != nil {
		sex, err := ParseSex(*r.Sex)
		if err != nil {
			return nil, err
		}
		s.Sex = sex
	}
	if err := patchTime(&s.Birthday, "birthday", r.Birthday); err != nil {
		return nil, err
	}
	if r.ParentID != nil {
		s.ParentID = *r.ParentID
	}
	if r.ClassID != nil {
		s.ClassID = r.ClassID.Int()
	}
	if r.GradeID != nil {
		s.GradeID = r.GradeID.Int()
	}
	applyNullableString(&s.Email, r.Email)
	applyNullableString(&s.Phone, r.Phone)
	applyNullableString(&s.Address, r.Address)
	applyNullableString(&s.Img, r.Img)
	applyNullableString(&s.BloodType, r.BloodType)
	return nil, nil
}
