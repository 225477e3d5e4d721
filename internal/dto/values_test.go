package dto

import (
	"encoding/json"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/polinatih/school-proj/internal/model"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

func TestFlexInt_Unmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{`5`, 5, false},
		{`"7"`, 7, false},
		{`" 12 "`, 12, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`3.0`, 3, false},
		{`"abc"`, 0, true},
		{`true`, 0, true},
	}
	for _, tt := range tests {
		var n FlexInt
		err := json.Unmarshal([]byte(tt.in), &n)
		if (err != nil) != tt.wantErr {
			t.Fatalf("%s: err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && n.Int() != tt.want {
			t.Errorf("%s: got %d, want %d", tt.in, n.Int(), tt.want)
		}
	}
}

func TestOptional_DistinguishesAbsentAndNull(t *testing.T) {
	var req UpdateClassRequest
	if err := json.Unmarshal([]byte(`{"name":"2A"}`), &req); err != nil {
		t.Fatal(err)
	}
	if req.SupervisorID.Set {
		t.Error("absent field should not be Set")
	}

	req = UpdateClassRequest{}
	if err := json.Unmarshal([]byte(`{"supervisorId":null}`), &req); err != nil {
		t.Fatal(err)
	}
	if !req.SupervisorID.Set || !req.SupervisorID.Null {
		t.Errorf("explicit null: got %+v", req.SupervisorID)
	}
}

func TestParseTime(t *testing.T) {
	for _, s := range []string{"2024-09-01", "2024-09-01T08:00", "2024-09-01T08:00:00", "2024-09-01T08:00:00Z", "2024-09-01 08:00:00"} {
		got, err := ParseTime("startTime", s)
		if err != nil {
			t.Errorf("%q: %v", s, err)
			continue
		}
		if got.Year() != 2024 || got.Month() != 9 || got.Day() != 1 {
			t.Errorf("%q parsed to %v", s, got)
		}
	}

	_, err := ParseTime("birthday", "yesterday")
	e, ok := pkgerrors.As(err)
	if !ok || e.Kind != pkgerrors.KindValidation || e.Message != "Invalid date for birthday" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestParseSexAndDay(t *testing.T) {
	if s, err := ParseSex(" Female "); err != nil || s != "female" {
		t.Errorf("ParseSex = %q, %v", s, err)
	}
	if _, err := ParseSex("other"); err == nil {
		t.Error("expected invalid sex")
	}
	if d, err := ParseDay("monday"); err != nil || d != "MONDAY" {
		t.Errorf("ParseDay = %q, %v", d, err)
	}
	if _, err := ParseDay("FUNDAY"); err == nil {
		t.Error("expected invalid day")
	}
}

func TestListRequest_Clamp(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
		wantOffset          int
	}{
		{0, 0, 1, 10, 0},
		{-3, -1, 1, 10, 0},
		{3, 20, 3, 20, 40},
		{2, 500, 2, 100, 100},
	}
	for _, tt := range tests {
		r := ListRequest{Page: tt.page, Limit: tt.limit}
		if r.GetPage() != tt.wantPage || r.GetLimit() != tt.wantLimit || r.GetOffset() != tt.wantOffset {
			t.Errorf("page=%d limit=%d: got %d/%d/%d", tt.page, tt.limit, r.GetPage(), r.GetLimit(), r.GetOffset())
		}
	}
}

// ── builders ──

func TestCreateResultRequest_Build(t *testing.T) {
	score := FlexInt(88)
	exam := FlexInt(4)

	_, _, err := CreateResultRequest{Score: &score, StudentID: "s1"}.Build()
	if e, ok := pkgerrors.As(err); !ok || e.Message != "Either examId or assignmentId is required" {
		t.Fatalf("missing source: %v", err)
	}

	res, _, err := CreateResultRequest{Score: &score, StudentID: "s1", ExamID: &exam}.Build()
	if err != nil {
		t.Fatal(err)
	}
	if res.ExamID == nil || *res.ExamID != 4 || res.AssignmentID != nil || res.Score != 88 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestCreateTeacherRequest_Build(t *testing.T) {
	req := CreateTeacherRequest{
		Username:   "teacher3",
		Name:       "Ann",
		Surname:    "Lee",
		Sex:        "FEMALE",
		Birthday:   "1985-03-04",
		Email:      strPtr("  "),
		SubjectIDs: []FlexInt{1, 2},
	}
	tch, links, err := req.Build()
	if err != nil {
		t.Fatal(err)
	}
	if tch.ID == "" {
		t.Error("expected a generated id")
	}
	if tch.Email != nil {
		t.Error("blank email should be stored as NULL")
	}
	if len(links) != 1 || len(links[0].TargetIDs) != 2 || links[0].Table != "subject_teachers" {
		t.Errorf("unexpected links %+v", links)
	}
}

func TestUpdateEventRequest_ClearsClass(t *testing.T) {
	classID := 3
	ev := eventWithClass(&classID)

	var req UpdateEventRequest
	if err := json.Unmarshal([]byte(`{"classId":null,"title":"Sports day"}`), &req); err != nil {
		t.Fatal(err)
	}
	if _, err := req.Apply(ev); err != nil {
		t.Fatal(err)
	}
	if ev.ClassID != nil || ev.Title != "Sports day" {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestCreateAdminRequest_HashesPassword(t *testing.T) {
	a, _, err := CreateAdminRequest{Username: "root", Email: "Root@School.com", Password: "secret123"}.Build()
	if err != nil {
		t.Fatal(err)
	}
	if a.Email != "root@school.com" {
		t.Errorf("email not normalized: %s", a.Email)
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Password), []byte("secret123")) != nil {
		t.Error("password not hashed with bcrypt")
	}
	if !CheckPassword(a.Password, "secret123") || CheckPassword(a.Password, "nope") {
		t.Error("CheckPassword mismatch")
	}
}

func TestUpdateAdminRequest_PasswordRehashedOnlyWhenChanged(t *testing.T) {
	a, _, err := CreateAdminRequest{Username: "root", Email: "root@school.com", Password: "secret123"}.Build()
	if err != nil {
		t.Fatal(err)
	}
	original := a.Password

	if _, err := (UpdateAdminRequest{Password: strPtr("secret123")}).Apply(a); err != nil {
		t.Fatal(err)
	}
	if a.Password != original {
		t.Error("same password must keep the stored hash")
	}

	if _, err := (UpdateAdminRequest{Password: strPtr("another-secret")}).Apply(a); err != nil {
		t.Fatal(err)
	}
	if a.Password == original || !CheckPassword(a.Password, "another-secret") {
		t.Error("new password not hashed")
	}
}

func strPtr(s string) *string { return &s }

func eventWithClass(classID *int) *model.Event {
	return &model.Event{Title: "Fair", ClassID: classID}
}
