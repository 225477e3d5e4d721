package dto

import (
	"github.com/google/uuid"

	"github.com/polinatih/school-proj/internal/model"
)

// ── teachers ──

// CreateTeacherRequest POST /api/teachers. ID may carry the identity
// provider's user id; a random one is generated otherwise.
type CreateTeacherRequest struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"  binding:"required,max=100"`
	Name       string    `json:"name"      binding:"required,max=100"`
	Surname    string    `json:"surname"   binding:"required,max=100"`
	Sex        string    `json:"sex"       binding:"required"`
	Birthday   string    `json:"birthday"  binding:"required"`
	Email      *string   `json:"email"     binding:"omitempty,max=255"`
	Phone      *string   `json:"phone"     binding:"omitempty,max=50"`
	Address    *string   `json:"address"   binding:"omitempty,max=255"`
	Img        *string   `json:"img"`
	BloodType  *string   `json:"bloodType" binding:"omitempty,max=10"`
	SubjectIDs []FlexInt `json:"subjectIds"`
}

func (r CreateTeacherRequest) Build() (*model.Teacher, []model.Link, error) {
	sex, err := ParseSex(r.Sex)
	if err != nil {
		return nil, nil, err
	}
	birthday, err := ParseTime("birthday", r.Birthday)
	if err != nil {
		return nil, nil, err
	}

	t := &model.Teacher{
		ID:        r.ID,
		Username:  r.Username,
		Name:      r.Name,
		Surname:   r.Surname,
		Email:     nonEmpty(r.Email),
		Phone:     nonEmpty(r.Phone),
		Address:   nonEmpty(r.Address),
		Img:       nonEmpty(r.Img),
		BloodType: nonEmpty(r.BloodType),
		Sex:       sex,
		Birthday:  birthday,
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	var links []model.Link
	if len(r.SubjectIDs) > 0 {
		links = append(links, model.TeacherSubjectsLink(Ints(r.SubjectIDs)))
	}
	return t, links, nil
}

// UpdateTeacherRequest PUT /api/teachers/:id
type UpdateTeacherRequest struct {
	Username   *string          `json:"username" binding:"omitempty,min=1,max=100"`
	Name       *string          `json:"name"     binding:"omitempty,min=1,max=100"`
	Surname    *string          `json:"surname"  binding:"omitempty,min=1,max=100"`
	Sex        *string          `json:"sex"`
	Birthday   *string          `json:"birthday"`
	Email      Optional[string] `json:"email"`
	Phone      Optional[string] `json:"phone"`
	Address    Optional[string] `json:"address"`
	Img        Optional[string] `json:"img"`
	BloodType  Optional[string] `json:"bloodType"`
	SubjectIDs *[]FlexInt       `json:"subjectIds"`
}

func (r UpdateTeacherRequest) Apply(t *model.Teacher) ([]model.Link, error) {
	if r.Username != nil {
		t.Username = *r.Username
	}
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Surname != nil {
		t.Surname = *r.Surname
	}
	if r.Sex != nil {
		sex, err := ParseSex(*r.Sex)
		if err != nil {
			return nil, err
		}
		t.Sex = sex
	}
	if err := patchTime(&t.Birthday, "birthday", r.Birthday); err != nil {
		return nil, err
	}
	applyNullableString(&t.Email, r.Email)
	applyNullableString(&t.Phone, r.Phone)
	applyNullableString(&t.Address, r.Address)
	applyNullableString(&t.Img, r.Img)
	applyNullableString(&t.BloodType, r.BloodType)

	var links []model.Link
	if r.SubjectIDs != nil {
		links = append(links, model.TeacherSubjectsLink(Ints(*r.SubjectIDs)))
	}
	return links, nil
}
