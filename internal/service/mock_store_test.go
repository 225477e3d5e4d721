package service

import (
	"context"
	"fmt"

	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
)

// ── Mock Store ──

type mockStore[T any] struct {
	items  map[string]*T
	nextID int
	assign func(rec *T, id int)

	lastList  repository.ListQuery
	lastGet   repository.GetQuery
	lastLinks []model.Link
	refs      map[string]int64

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	created, updated, deleted int
}

func newMockStore[T any](assign func(rec *T, id int)) *mockStore[T] {
	return &mockStore[T]{items: make(map[string]*T), assign: assign}
}

func keyOf(rec interface{}) string {
	return fmt.Sprint(rec.(model.Entity).Key())
}

func (m *mockStore[T]) put(rec *T) {
	m.items[keyOf(rec)] = rec
}

func (m *mockStore[T]) List(_ context.Context, q repository.ListQuery) ([]T, int64, error) {
	m.lastList = q
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	out := make([]T, 0, len(m.items))
	for _, rec := range m.items {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (m *mockStore[T]) Get(_ context.Context, id interface{}, q repository.GetQuery) (*T, error) {
	m.lastGet = q
	if m.getErr != nil {
		return nil, m.getErr
	}
	rec, ok := m.items[fmt.Sprint(id)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *mockStore[T]) Create(_ context.Context, rec *T, links ...model.Link) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.assign != nil {
		m.nextID++
		m.assign(rec, m.nextID)
	}
	m.lastLinks = links
	m.created++
	m.put(rec)
	return nil
}

func (m *mockStore[T]) Update(_ context.Context, rec *T, links ...model.Link) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.lastLinks = links
	m.updated++
	m.put(rec)
	return nil
}

func (m *mockStore[T]) Delete(_ context.Context, id interface{}) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	k := fmt.Sprint(id)
	if _, ok := m.items[k]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, k)
	m.deleted++
	return nil
}

func (m *mockStore[T]) CountRefs(_ context.Context, _ interface{}, refs []repository.Count) (map[string]int64, error) {
	out := make(map[string]int64, len(refs))
	for _, r := range refs {
		out[r.Name] = m.refs[r.Name]
	}
	return out, nil
}

// ── fixtures ──

type mockStores struct {
	grade      *mockStore[model.Grade]
	class      *mockStore[model.Class]
	teacher    *mockStore[model.Teacher]
	student    *mockStore[model.Student]
	lesson     *mockStore[model.Lesson]
	exam       *mockStore[model.Exam]
	result     *mockStore[model.Result]
	event      *mockStore[model.Event]
	subject    *mockStore[model.Subject]
	assignment *mockStore[model.Assignment]
}

func newTestRepository() (*repository.Repository, *mockStores) {
	ms := &mockStores{
		grade:      newMockStore(func(g *model.Grade, id int) { g.ID = id }),
		class:      newMockStore(func(c *model.Class, id int) { c.ID = id }),
		teacher:    newMockStore[model.Teacher](nil),
		student:    newMockStore[model.Student](nil),
		lesson:     newMockStore(func(l *model.Lesson, id int) { l.ID = id }),
		exam:       newMockStore(func(e *model.Exam, id int) { e.ID = id }),
		result:     newMockStore(func(r *model.Result, id int) { r.ID = id }),
		event:      newMockStore(func(e *model.Event, id int) { e.ID = id }),
		subject:    newMockStore(func(s *model.Subject, id int) { s.ID = id }),
		assignment: newMockStore(func(a *model.Assignment, id int) { a.ID = id }),
	}
	repo := &repository.Repository{
		Grade:        ms.grade,
		Admin:        newMockStore(func(a *model.Admin, id int) { a.ID = id }),
		Teacher:      ms.teacher,
		Subject:      ms.subject,
		Class:        ms.class,
		Parent:       newMockStore[model.Parent](nil),
		Student:      ms.student,
		Lesson:       ms.lesson,
		Exam:         ms.exam,
		Assignment:   ms.assignment,
		Result:       ms.result,
		Attendance:   newMockStore(func(a *model.Attendance, id int) { a.ID = id }),
		Event:        ms.event,
		Announcement: newMockStore(func(a *model.Announcement, id int) { a.ID = id }),
	}
	return repo, ms
}
