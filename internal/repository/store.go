package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/polinatih/school-proj/internal/model"
)

// Condition is one WHERE fragment with its bind arguments.
type Condition struct {
	Expr string
	Args []interface{}
}

// Where builds a Condition.
func Where(expr string, args ...interface{}) Condition {
	return Condition{Expr: expr, Args: args}
}

// Preload expands one relation path (dot-separated, gorm field names).
// Order and Limit apply to the relation rows and are only meaningful when
// a single parent is loaded.
type Preload struct {
	Path  string
	Order string
	Limit int
}

// Count aggregates the rows in Table whose Column references the parent
// primary key. Name is the key under which the count is rendered.
type Count struct {
	Name   string
	Table  string
	Column string
}

// ListQuery describes one page of a list.
type ListQuery struct {
	Offset        int
	Limit         int // <= 0 means no limit
	Search        string
	SearchColumns []string
	Conditions    []Condition
	Order         string
	Preloads      []Preload
	Counts        []Count
}

// GetQuery describes the relation expansion of a single-record read.
type GetQuery struct {
	Preloads []Preload
	Counts   []Count
}

// Store is the generic data-access façade shared by every entity.
type Store[T any] interface {
	List(ctx context.Context, q ListQuery) ([]T, int64, error)
	Get(ctx context.Context, id interface{}, q GetQuery) (*T, error)
	Create(ctx context.Context, rec *T, links ...model.Link) error
	Update(ctx context.Context, rec *T, links ...model.Link) error
	Delete(ctx context.Context, id interface{}) error
	CountRefs(ctx context.Context, id interface{}, refs []Count) (map[string]int64, error)
}

type gormStore[T any] struct {
	db *gorm.DB
}

// NewStore creates a gorm-backed Store for T.
func NewStore[T any](db *gorm.DB) Store[T] {
	return &gormStore[T]{db: db}
}

// ────────────────────── List ──────────────────────

func (s *gormStore[T]) List(ctx context.Context, q ListQuery) ([]T, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		for _, c := range q.Conditions {
			db = db.Where(c.Expr, c.Args...)
		}
		if q.Search != "" && len(q.SearchColumns) > 0 {
			pattern := "%" + escapeLike(q.Search) + "%"
			parts := make([]string, len(q.SearchColumns))
			args := make([]interface{}, len(q.SearchColumns))
			for i, col := range q.SearchColumns {
				parts[i] = col + " ILIKE ?"
				args[i] = pattern
			}
			db = db.Where("("+strings.Join(parts, " OR ")+")", args...)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]T, 0)
	db := s.db.WithContext(ctx).Scopes(filter, preloads(q.Preloads))
	if q.Order != "" {
		db = db.Order(q.Order)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if err := db.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	if err := s.attachCounts(ctx, items, q.Counts); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ────────────────────── Get ──────────────────────

func (s *gormStore[T]) Get(ctx context.Context, id interface{}, q GetQuery) (*T, error) {
	rec := new(T)
	err := s.db.WithContext(ctx).
		Scopes(preloads(q.Preloads)).
		Where("id = ?", id).
		First(rec).Error
	if err != nil {
		return nil, err
	}

	if len(q.Counts) > 0 {
		counts, err := s.CountRefs(ctx, id, q.Counts)
		if err != nil {
			return nil, err
		}
		if e, ok := any(rec).(model.Entity); ok {
			for name, n := range counts {
				e.SetCount(name, n)
			}
		}
	}
	return rec, nil
}

// ────────────────────── Create / Update ──────────────────────

func (s *gormStore[T]) Create(ctx context.Context, rec *T, links ...model.Link) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		return writeLinks(tx, rec, links)
	})
	return translate(err)
}

// Update writes every column of an existing row. A row deleted since it
// was loaded yields ErrNotFound; Save would insert it again.
func (s *gormStore[T]) Update(ctx context.Context, rec *T, links ...model.Link) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(rec).Omit(clause.Associations).Select("*").Updates(rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return writeLinks(tx, rec, links)
	})
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return translate(err)
}

// writeLinks replaces the owner's join rows for every link.
func writeLinks(tx *gorm.DB, rec interface{}, links []model.Link) error {
	if len(links) == 0 {
		return nil
	}
	e, ok := rec.(model.Entity)
	if !ok {
		return fmt.Errorf("repository: %T cannot own links", rec)
	}
	owner := e.Key()

	for _, l := range links {
		if err := tx.Exec("DELETE FROM "+l.Table+" WHERE "+l.OwnerColumn+" = ?", owner).Error; err != nil {
			return err
		}
		if len(l.TargetIDs) == 0 {
			continue
		}
		rows := make([]map[string]interface{}, 0, len(l.TargetIDs))
		seen := make(map[string]bool, len(l.TargetIDs))
		for _, target := range l.TargetIDs {
			k := fmt.Sprint(target)
			if seen[k] {
				continue
			}
			seen[k] = true
			rows = append(rows, map[string]interface{}{l.OwnerColumn: owner, l.TargetColumn: target})
		}
		if err := tx.Table(l.Table).Create(rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *gormStore[T]) Delete(ctx context.Context, id interface{}) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ────────────────────── Counts ──────────────────────

func (s *gormStore[T]) CountRefs(ctx context.Context, id interface{}, refs []Count) (map[string]int64, error) {
	counts := make(map[string]int64, len(refs))
	for _, ref := range refs {
		var n int64
		err := s.db.WithContext(ctx).
			Table(ref.Table).
			Where(ref.Column+" = ?", id).
			Count(&n).Error
		if err != nil {
			return nil, err
		}
		counts[ref.Name] = n
	}
	return counts, nil
}

// attachCounts fills "_count" for a page with one grouped query per count.
func (s *gormStore[T]) attachCounts(ctx context.Context, items []T, refs []Count) error {
	if len(items) == 0 || len(refs) == 0 {
		return nil
	}

	keys := make([]interface{}, 0, len(items))
	byKey := make(map[string]model.Entity, len(items))
	for i := range items {
		e, ok := any(&items[i]).(model.Entity)
		if !ok {
			return nil
		}
		k := e.Key()
		keys = append(keys, k)
		byKey[fmt.Sprint(k)] = e
	}

	type row struct {
		RefKey string
		N      int64
	}
	for _, ref := range refs {
		var rows []row
		err := s.db.WithContext(ctx).
			Table(ref.Table).
			Select("CAST("+ref.Column+" AS TEXT) AS ref_key, COUNT(*) AS n").
			Where(ref.Column+" IN ?", keys).
			Group(ref.Column).
			Scan(&rows).Error
		if err != nil {
			return err
		}

		for _, e := range byKey {
			e.SetCount(ref.Name, 0)
		}
		for _, r := range rows {
			if e, ok := byKey[r.RefKey]; ok {
				e.SetCount(ref.Name, r.N)
			}
		}
	}
	return nil
}

// ── helpers ──

func preloads(ps []Preload) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range ps {
			if p.Order == "" && p.Limit <= 0 {
				db = db.Preload(p.Path)
				continue
			}
			order, limit := p.Order, p.Limit
			db = db.Preload(p.Path, func(tx *gorm.DB) *gorm.DB {
				if order != "" {
					tx = tx.Order(order)
				}
				if limit > 0 {
					tx = tx.Limit(limit)
				}
				return tx
			})
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
