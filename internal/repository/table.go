package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/rumbos-envios/internal/model"
)

// table holds the CRUD plumbing shared by every entity repository.
type table[T any] struct {
	db     *gorm.DB
	search []string
	order  string
}

func (t table[T]) Create(ctx context.Context, value *T) error {
	return t.db.WithContext(ctx).Create(value).Error
}

func (t table[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var value T
	if err := t.db.WithContext(ctx).Where("id = ?", id).First(&value).Error; err != nil {
		return nil, err
	}
	return &value, nil
}

func (t table[T]) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*T, error) {
	if len(changes) > 0 {
		result := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return t.Get(ctx, id)
}

func (t table[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// list runs a filtered, searched and paginated select. A zero page size
// returns every matching row.
func (t table[T]) list(ctx context.Context, query model.ListQuery, scope func(*gorm.DB) *gorm.DB) (model.ListResult[T], error) {
	base := func() *gorm.DB {
		q := t.db.WithContext(ctx).Model(new(T))
		if scope != nil {
			q = scope(q)
		}
		return t.applySearch(q, query.Search)
	}

	var count int64
	if err := base().Count(&count).Error; err != nil {
		return model.ListResult[T]{}, err
	}

	rows := make([]T, 0)
	q := base()
	if t.order != "" {
		q = q.Order(t.order)
	}
	if query.PageSize > 0 {
		q = q.Offset(query.Offset()).Limit(query.PageSize)
	}
	if err := q.Find(&rows).Error; err != nil {
		return model.ListResult[T]{}, err
	}
	return model.ListResult[T]{Data: rows, Count: count}, nil
}

func (t table[T]) applySearch(q *gorm.DB, term string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(t.search) == 0 {
		return q
	}
	clauses := make([]string, len(t.search))
	args := make([]interface{}, len(t.search))
	pattern := "%" + escapeLike(term) + "%"
	for i, column := range t.search {
		clauses[i] = column + " ILIKE ?"
		args[i] = pattern
	}
	return q.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

// names resolves display names for a set of ids in one query.
func names(ctx context.Context, db *gorm.DB, tableName, column string, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	err := db.WithContext(ctx).
		Table(tableName).
		Select("id, "+column+" AS name").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Name
	}
	return out, nil
}

func ref(lookup map[uuid.UUID]string, id *uuid.UUID) *model.Ref {
	if id == nil {
		return nil
	}
	name, ok := lookup[*id]
	if !ok {
		return nil
	}
	return &model.Ref{ID: *id, Name: name}
}

func collectIDs(ids ...*uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == nil || *id == uuid.Nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		out = append(out, *id)
	}
	return out
}

// uuidRef pairs a foreign key with the Ref field it should populate.
type uuidRef struct {
	id     *uuid.UUID
	target **model.Ref
}

func resolve(ctx context.Context, db *gorm.DB, tableName, column string, refs []*uuidRef) error {
	ids := make([]*uuid.UUID, len(refs))
	for i, r := range refs {
		ids[i] = r.id
	}
	lookup, err := names(ctx, db, tableName, column, collectIDs(ids...))
	if err != nil {
		return err
	}
	for _, r := range refs {
		*r.target = ref(lookup, r.id)
	}
	return nil
}
