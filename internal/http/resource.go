package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

type entityService[T any, F any] interface {
	Add(ctx context.Context, value T) (*T, error)
	Update(ctx context.Context, id uuid.UUID, patch validation.Patch[T]) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	List(ctx context.Context, filter F) (model.ListResult[T], error)
}

// resource serves the five standard routes of one entity table.
type resource[T any, F any] struct {
	h      *Handler
	svc    entityService[T, F]
	schema *validation.Schema[T]
	filter func(c *gin.Context) (F, error)
}

func (r resource[T, F]) register(group *gin.RouterGroup, write gin.HandlerFunc) {
	group.GET("", r.list)
	group.GET("/:id", r.get)
	group.POST("", write, r.create)
	group.PATCH("/:id", write, r.update)
	group.DELETE("/:id", write, r.delete)
}

func (r resource[T, F]) list(c *gin.Context) {
	filter, err := r.filter(c)
	if err != nil {
		r.h.handleError(c, err)
		return
	}
	result, err := r.svc.List(c.Request.Context(), filter)
	if err != nil {
		r.h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (r resource[T, F]) get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		r.h.handleError(c, err)
		return
	}
	value, err := r.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		r.h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, value)
}

func (r resource[T, F]) create(c *gin.Context) {
	value := r.schema.New()
	if err := c.ShouldBindJSON(&value); err != nil {
		r.h.handleError(c, badBody(err))
		return
	}
	created, err := r.svc.Add(c.Request.Context(), value)
	if err != nil {
		r.h.handleError(c, err)
		return
	}
	ok(c, http.StatusCreated, created)
}

func (r resource[T, F]) update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		r.h.handleError(c, err)
		return
	}
	patch, err := decodePatch(c, r.schema)
	if err != nil {
		r.h.handleError(c, err)
		return
	}
	updated, err := r.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		r.h.handleError(c, err)
		return
	}
	ok(c, http.StatusOK, updated)
}

func (r resource[T, F]) delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		r.h.handleError(c, err)
		return
	}
	if err := r.svc.Delete(c.Request.Context(), id); err != nil {
		r.h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func decodePatch[T any](c *gin.Context, schema *validation.Schema[T]) (validation.Patch[T], error) {
	body, err := c.GetRawData()
	if err != nil {
		return validation.Patch[T]{}, badBody(err)
	}
	patch, err := schema.DecodePatch(body)
	if err != nil {
		return validation.Patch[T]{}, badBody(err)
	}
	return patch, nil
}
