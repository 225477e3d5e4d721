package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/polinatih/school-proj/internal/dto"
	"github.com/polinatih/school-proj/internal/model"
	"github.com/polinatih/school-proj/internal/repository"
	pkgerrors "github.com/polinatih/school-proj/pkg/errors"
)

// Meta is the part of a resource description the HTTP layer needs.
type Meta struct {
	// Name is the singular display name used in messages ("Class").
	Name string
	// Plural is the lower-case collection name ("classes").
	Plural string
	// Required lists the JSON fields a create request must carry.
	Required []string
}

// Label is the lower-case singular used in failure messages.
func (m Meta) Label() string { return strings.ToLower(m.Name) }

// Filter turns one query parameter into a WHERE condition. Empty values
// never reach Build.
type Filter struct {
	Param string
	Build func(value string) (repository.Condition, error)
}

// Descriptor configures a generic resource service for one table.
type Descriptor[T any] struct {
	Meta

	// IntID marks tables with serial primary keys.
	IntID bool

	SearchColumns []string
	Filters       []Filter
	Order         string

	ListPreloads   []repository.Preload
	DetailPreloads []repository.Preload
	// WritePreloads expand the record returned from create and update.
	WritePreloads []repository.Preload
	Counts        []repository.Count

	// Dependents must all be zero before a delete goes ahead.
	Dependents    []repository.Count
	DeleteBlocked string

	// Conflict is the message for any unique violation.
	Conflict string
	// References maps foreign key constraint names to not-found messages.
	References map[string]string
	// Checks maps check constraint names to validation messages.
	Checks map[string]string

	// Validate runs on the full record before every write.
	Validate func(rec *T) error
}

// ResourceService is the CRUD contract shared by every entity.
type ResourceService[T any] interface {
	Meta() Meta
	List(ctx context.Context, req *dto.ListRequest) ([]T, int64, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, req dto.Creator[T]) (*T, error)
	Update(ctx context.Context, id string, req dto.Patcher[T]) (*T, error)
	Delete(ctx context.Context, id string) error
}

type resourceService[T any] struct {
	store  repository.Store[T]
	desc   Descriptor[T]
	logger *zap.Logger
}

// NewResource creates a ResourceService over store.
func NewResource[T any](store repository.Store[T], desc Descriptor[T], logger *zap.Logger) ResourceService[T] {
	return &resourceService[T]{
		store:  store,
		desc:   desc,
		logger: logger.With(zap.String("resource", desc.Plural)),
	}
}

func (s *resourceService[T]) Meta() Meta { return s.desc.Meta }

// ────────────────────── List ──────────────────────

func (s *resourceService[T]) List(ctx context.Context, req *dto.ListRequest) ([]T, int64, error) {
	q := repository.ListQuery{
		Offset:        req.GetOffset(),
		Limit:         req.GetLimit(),
		Search:        strings.TrimSpace(req.Search),
		SearchColumns: s.desc.SearchColumns,
		Order:         s.desc.Order,
		Preloads:      s.desc.ListPreloads,
		Counts:        s.desc.Counts,
	}
	for _, f := range s.desc.Filters {
		v := strings.TrimSpace(req.Filter(f.Param))
		if v == "" {
			continue
		}
		cond, err := f.Build(v)
		if err != nil {
			return nil, 0, err
		}
		q.Conditions = append(q.Conditions, cond)
	}

	items, total, err := s.store.List(ctx, q)
	if err != nil {
		s.logger.Error("list failed", zap.Error(err))
		return nil, 0, pkgerrors.Internal("Failed to fetch "+s.desc.Plural, err)
	}
	return items, total, nil
}

// ────────────────────── Get ──────────────────────

func (s *resourceService[T]) Get(ctx context.Context, id string) (*T, error) {
	key, err := s.parseID(id)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.Get(ctx, key, repository.GetQuery{Preloads: s.desc.DetailPreloads, Counts: s.desc.Counts})
	if err != nil {
		return nil, s.readError(err, "fetch")
	}
	return rec, nil
}

// ────────────────────── Create ──────────────────────

func (s *resourceService[T]) Create(ctx context.Context, req dto.Creator[T]) (*T, error) {
	rec, links, err := req.Build()
	if err != nil {
		return nil, s.writeError(err, "create")
	}
	if err := s.validate(rec); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, rec, links...); err != nil {
		return nil, s.writeError(err, "create")
	}
	return s.reload(ctx, rec, "create")
}

// ────────────────────── Update ──────────────────────

func (s *resourceService[T]) Update(ctx context.Context, id string, req dto.Patcher[T]) (*T, error) {
	key, err := s.parseID(id)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.Get(ctx, key, repository.GetQuery{})
	if err != nil {
		return nil, s.readError(err, "update")
	}

	links, err := req.Apply(rec)
	if err != nil {
		return nil, s.writeError(err, "update")
	}
	if err := s.validate(rec); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, rec, links...); err != nil {
		return nil, s.writeError(err, "update")
	}
	return s.reload(ctx, rec, "update")
}

// ────────────────────── Delete ──────────────────────

func (s *resourceService[T]) Delete(ctx context.Context, id string) error {
	key, err := s.parseID(id)
	if err != nil {
		return err
	}
	if _, err := s.store.Get(ctx, key, repository.GetQuery{}); err != nil {
		return s.readError(err, "delete")
	}

	if len(s.desc.Dependents) > 0 {
		counts, err := s.store.CountRefs(ctx, key, s.desc.Dependents)
		if err != nil {
			s.logger.Error("count dependents failed", zap.String("id", id), zap.Error(err))
			return pkgerrors.Internal("Failed to delete "+s.desc.Label(), err)
		}
		blocking := make(map[string]int64)
		for name, n := range counts {
			if n > 0 {
				blocking[name] = n
			}
		}
		if len(blocking) > 0 {
			return pkgerrors.Conflict(s.deleteBlocked()).WithDetail("dependents", blocking)
		}
	}

	if err := s.store.Delete(ctx, key); err != nil {
		if ce, ok := repository.AsConstraintError(err); ok && ce.Kind == repository.ForeignKeyViolation {
			return pkgerrors.Conflict(s.deleteBlocked())
		}
		return s.readError(err, "delete")
	}
	return nil
}

// ── helpers ──

// parseID converts a path id to the key type; a malformed integer id can
// match nothing and reads as not found.
func (s *resourceService[T]) parseID(id string) (interface{}, error) {
	id = strings.TrimSpace(id)
	if !s.desc.IntID {
		if id == "" {
			return nil, s.notFound()
		}
		return id, nil
	}
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return nil, s.notFound()
	}
	return n, nil
}

func (s *resourceService[T]) validate(rec *T) error {
	if s.desc.Validate == nil {
		return nil
	}
	return s.desc.Validate(rec)
}

// reload returns the stored record with its write-time relations.
func (s *resourceService[T]) reload(ctx context.Context, rec *T, verb string) (*T, error) {
	e, ok := any(rec).(model.Entity)
	if !ok || len(s.desc.WritePreloads) == 0 {
		return rec, nil
	}
	out, err := s.store.Get(ctx, e.Key(), repository.GetQuery{Preloads: s.desc.WritePreloads})
	if err != nil {
		s.logger.Error("reload failed", zap.String("verb", verb), zap.Error(err))
		return nil, pkgerrors.Internal("Failed to "+verb+" "+s.desc.Label(), err)
	}
	return out, nil
}

func (s *resourceService[T]) notFound() error {
	return pkgerrors.NotFound(s.desc.Name + " not found")
}

func (s *resourceService[T]) deleteBlocked() string {
	if s.desc.DeleteBlocked != "" {
		return s.desc.DeleteBlocked
	}
	return "Cannot delete " + s.desc.Label() + " with dependent records"
}

// readError maps lookup failures.
func (s *resourceService[T]) readError(err error, verb string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return s.notFound()
	}
	if _, ok := pkgerrors.As(err); ok {
		return err
	}
	s.logger.Error(verb+" failed", zap.Error(err))
	return pkgerrors.Internal("Failed to "+verb+" "+s.desc.Label(), err)
}

// writeError maps build and persistence failures, including integrity
// violations reported by the database.
func (s *resourceService[T]) writeError(err error, verb string) error {
	if _, ok := pkgerrors.As(err); ok {
		return err
	}
	if ce, ok := repository.AsConstraintError(err); ok {
		switch ce.Kind {
		case repository.UniqueViolation:
			msg := s.desc.Conflict
			if msg == "" {
				msg = s.desc.Name + " already exists"
			}
			return pkgerrors.Conflict(msg)
		case repository.ForeignKeyViolation:
			if msg, ok := s.desc.References[ce.Constraint]; ok {
				return pkgerrors.NotFound(msg)
			}
			return pkgerrors.NotFound("Referenced record not found")
		case repository.CheckViolation:
			if msg, ok := s.desc.Checks[ce.Constraint]; ok {
				return pkgerrors.Validation(msg)
			}
			return pkgerrors.Validation("Invalid " + s.desc.Label())
		}
	}
	return s.readError(err, verb)
}

// ── filter builders ──

// IntFilter matches column against an integer query parameter.
func IntFilter(param, column string) Filter {
	return IntExprFilter(param, column+" = ?")
}

// IntExprFilter binds an integer query parameter into expr, which holds a
// single placeholder.
func IntExprFilter(param, expr string) Filter {
	return Filter{Param: param, Build: func(v string) (repository.Condition, error) {
		n, err := strconv.Atoi(v)
		if err != nil {
			return repository.Condition{}, pkgerrors.Validation("Invalid value for " + param)
		}
		return repository.Where(expr, n), nil
	}}
}

// TextFilter matches column against a text query parameter.
func TextFilter(param, column string) Filter {
	return Filter{Param: param, Build: func(v string) (repository.Condition, error) {
		return repository.Where(column+" = ?", v), nil
	}}
}

// FlagFilter applies cond when the parameter is "true"; any other value
// disables the filter.
func FlagFilter(param string, cond func() repository.Condition) Filter {
	return Filter{Param: param, Build: func(v string) (repository.Condition, error) {
		if b, err := strconv.ParseBool(v); err != nil || !b {
			return repository.Condition{Expr: "TRUE"}, nil
		}
		return cond(), nil
	}}
}
