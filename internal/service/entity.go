package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

// Store is the persistence contract every entity module relies on.
type Store[T any, F any] interface {
	Create(ctx context.Context, value *T) error
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter F) (model.ListResult[T], error)
}

// entity implements add/update/delete/get/list for one table: validate,
// then forward a single store call.
type entity[T any, F any] struct {
	store  Store[T, F]
	schema *validation.Schema[T]
	pager  Pager
	label  string
}

func (e entity[T, F]) Add(ctx context.Context, value T) (*T, error) {
	valid, err := e.schema.Create(value)
	if err != nil {
		return nil, invalid(err)
	}
	if err := e.store.Create(ctx, &valid); err != nil {
		return nil, gateway(err, "create "+e.label)
	}
	return &valid, nil
}

func (e entity[T, F]) Update(ctx context.Context, id uuid.UUID, patch validation.Patch[T]) (*T, error) {
	changes, err := e.schema.Update(patch)
	if err != nil {
		return nil, invalid(err)
	}
	updated, err := e.store.Update(ctx, id, changes)
	if err != nil {
		return nil, gateway(err, e.label)
	}
	return updated, nil
}

func (e entity[T, F]) Delete(ctx context.Context, id uuid.UUID) error {
	return gateway(e.store.Delete(ctx, id), e.label)
}

func (e entity[T, F]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	value, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, gateway(err, e.label)
	}
	return value, nil
}

func (e entity[T, F]) List(ctx context.Context, filter F) (model.ListResult[T], error) {
	if p, ok := any(&filter).(pageable); ok {
		e.pager.normalize(p)
	}
	result, err := e.store.List(ctx, filter)
	if err != nil {
		return model.ListResult[T]{}, gateway(err, "list "+e.label)
	}
	return result, nil
}
