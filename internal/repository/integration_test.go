//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
	"github.com/polinatih/school-proj/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=school_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "get sql.DB: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "run migrations: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func unique(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// setupTestData creates a grade, a teacher and a class, returning a cleanup func.
func setupTestData(t *testing.T) (grade *model.Grade, teacher *model.Teacher, class *model.Class, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	// levels are unique; pick one far outside the seeded range
	grade = &model.Grade{Level: int(time.Now().UnixNano()%1_000_000) + 1000}
	if err := testDB.WithContext(ctx).Create(grade).Error; err != nil {
		t.Fatalf("create grade: %v", err)
	}

	teacher = &model.Teacher{
		ID:       unique("t"),
		Username: unique("teacher"),
		Name:     "Test",
		Surname:  "Teacher",
		Sex:      model.SexFemale,
		Birthday: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := testDB.WithContext(ctx).Create(teacher).Error; err != nil {
		t.Fatalf("create teacher: %v", err)
	}

	class = &model.Class{Name: unique("C"), Capacity: 20, GradeID: grade.ID, SupervisorID: &teacher.ID}
	if err := testDB.WithContext(ctx).Create(class).Error; err != nil {
		t.Fatalf("create class: %v", err)
	}

	cleanup = func() {
		testDB.Where("id = ?", class.ID).Delete(&model.Class{})
		testDB.Where("id = ?", teacher.ID).Delete(&model.Teacher{})
		testDB.Where("id = ?", grade.ID).Delete(&model.Grade{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Store reads
// ═══════════════════════════════════════════════════════════

func TestStore_GetWithPreloadsAndCounts(t *testing.T) {
	grade, teacher, class, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	got, err := repo.Class.Get(ctx, class.ID, repository.GetQuery{
		Preloads: []repository.Preload{{Path: "Grade"}, {Path: "Supervisor"}},
		Counts:   []repository.Count{{Name: "students", Table: "students", Column: "class_id"}},
	})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Grade == nil || got.Grade.ID != grade.ID {
		t.Errorf("grade not preloaded: %+v", got.Grade)
	}
	if got.Supervisor == nil || got.Supervisor.ID != teacher.ID {
		t.Errorf("supervisor not preloaded: %+v", got.Supervisor)
	}
	if n, ok := got.Count["students"]; !ok || n != 0 {
		t.Errorf("expected students count 0, got %v (present=%v)", n, ok)
	}
}

func TestStore_GetMissing(t *testing.T) {
	repo := repository.NewRepository(testDB)

	_, err := repo.Grade.Get(context.Background(), -1, repository.GetQuery{})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListSearchAndFilter(t *testing.T) {
	grade, _, class, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	items, total, err := repo.Class.List(ctx, repository.ListQuery{
		Limit:         10,
		Search:        class.Name,
		SearchColumns: []string{"name"},
		Conditions:    []repository.Condition{repository.Where("grade_id = ?", grade.ID)},
		Order:         "name ASC",
		Counts:        []repository.Count{{Name: "lessons", Table: "lessons", Column: "class_id"}},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected exactly one class, got total=%d len=%d", total, len(items))
	}
	if items[0].ID != class.ID {
		t.Errorf("unexpected class %d", items[0].ID)
	}
	if items[0].Count["lessons"] != 0 {
		t.Errorf("expected lessons count 0, got %d", items[0].Count["lessons"])
	}
}

func TestStore_SearchEscapesWildcards(t *testing.T) {
	repo := repository.NewRepository(testDB)

	_, total, err := repo.Subject.List(context.Background(), repository.ListQuery{
		Limit:         10,
		Search:        unique("%_no_such_subject_"),
		SearchColumns: []string{"name"},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 {
		t.Errorf("expected no match, got %d", total)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Writes and constraint translation
// ═══════════════════════════════════════════════════════════

func TestStore_CreateWithLinks(t *testing.T) {
	_, teacher, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	subject := &model.Subject{Name: unique("Subject")}
	if err := repo.Subject.Create(ctx, subject, model.SubjectTeachersLink([]string{teacher.ID, teacher.ID})); err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer testDB.Where("id = ?", subject.ID).Delete(&model.Subject{})

	got, err := repo.Subject.Get(ctx, subject.ID, repository.GetQuery{Preloads: []repository.Preload{{Path: "Teachers"}}})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Teachers) != 1 || got.Teachers[0].ID != teacher.ID {
		t.Fatalf("expected one linked teacher, got %+v", got.Teachers)
	}

	// an empty link clears the join rows
	if err := repo.Subject.Update(ctx, got, model.SubjectTeachersLink(nil)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.Subject.Get(ctx, subject.ID, repository.GetQuery{Preloads: []repository.Preload{{Path: "Teachers"}}})
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if len(got.Teachers) != 0 {
		t.Errorf("expected links cleared, got %d", len(got.Teachers))
	}
}

func TestStore_UpdateAfterDelete(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	subject := &model.Subject{Name: unique("Subject")}
	if err := repo.Subject.Create(ctx, subject); err != nil {
		t.Fatalf("Create: %v", err)
	}
	loaded, err := repo.Subject.Get(ctx, subject.ID, repository.GetQuery{})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := repo.Subject.Delete(ctx, subject.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	loaded.Name = unique("Renamed")
	if err := repo.Subject.Update(ctx, loaded); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var n int64
	testDB.Model(&model.Subject{}).Where("id = ?", subject.ID).Count(&n)
	if n != 0 {
		t.Errorf("deleted subject was written back (%d rows)", n)
	}
}

func TestStore_UniqueViolation(t *testing.T) {
	grade, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)

	err := repo.Grade.Create(context.Background(), &model.Grade{Level: grade.Level})
	ce, ok := repository.AsConstraintError(err)
	if !ok {
		t.Fatalf("expected constraint error, got %v", err)
	}
	if ce.Kind != repository.UniqueViolation || ce.Constraint != "uq_grades_level" {
		t.Errorf("unexpected constraint error: %v", ce)
	}
}

func TestStore_ForeignKeyViolationOnWrite(t *testing.T) {
	repo := repository.NewRepository(testDB)

	err := repo.Class.Create(context.Background(), &model.Class{Name: unique("C"), Capacity: 10, GradeID: -1})
	ce, ok := repository.AsConstraintError(err)
	if !ok {
		t.Fatalf("expected constraint error, got %v", err)
	}
	if ce.Kind != repository.ForeignKeyViolation || ce.Constraint != "fk_classes_grade" {
		t.Errorf("unexpected constraint error: %v", ce)
	}
}

func TestStore_ForeignKeyViolationOnDelete(t *testing.T) {
	grade, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)

	err := repo.Grade.Delete(context.Background(), grade.ID)
	ce, ok := repository.AsConstraintError(err)
	if !ok {
		t.Fatalf("expected constraint error, got %v", err)
	}
	if ce.Kind != repository.ForeignKeyViolation {
		t.Errorf("expected foreign key violation, got %v", ce.Kind)
	}
}

func TestStore_CheckViolation(t *testing.T) {
	repo := repository.NewRepository(testDB)

	err := repo.Teacher.Create(context.Background(), &model.Teacher{
		ID:       unique("t"),
		Username: unique("teacher"),
		Name:     "Bad",
		Surname:  "Sex",
		Sex:      "other",
		Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	ce, ok := repository.AsConstraintError(err)
	if !ok {
		t.Fatalf("expected constraint error, got %v", err)
	}
	if ce.Kind != repository.CheckViolation || ce.Constraint != "chk_teachers_sex" {
		t.Errorf("unexpected constraint error: %v", ce)
	}
}

func TestStore_DeleteAndCountRefs(t *testing.T) {
	grade, _, class, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	counts, err := repo.Grade.CountRefs(ctx, grade.ID, []repository.Count{
		{Name: "classes", Table: "classes", Column: "grade_id"},
		{Name: "students", Table: "students", Column: "grade_id"},
	})
	if err != nil {
		t.Fatalf("CountRefs: %v", err)
	}
	if counts["classes"] != 1 || counts["students"] != 0 {
		t.Errorf("unexpected counts %v", counts)
	}

	if err := repo.Class.Delete(ctx, class.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Class.Delete(ctx, class.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
