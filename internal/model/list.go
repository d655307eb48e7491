package model

import (
	"github.com/google/uuid"
)

// Page is the pagination window requested by a list call. Page is 1-based.
type Page struct {
	Page     int
	PageSize int
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// ListResult is the {data, count} shape returned by every list operation.
type ListResult[T any] struct {
	Data  []T   `json:"data"`
	Count int64 `json:"count"`
}

type ListQuery struct {
	Page
	Search string
}

type DriverFilter struct {
	ListQuery
	Status *DriverStatus
}

type CatalogFilter struct {
	ListQuery
	Active *bool
}

type ShipmentFilter struct {
	ListQuery
	Status   *ShipmentStatus
	ClientID *uuid.UUID
	DriverID *uuid.UUID
	From     *Date
	To       *Date
}

type RunFilter struct {
	ListQuery
	DriverID *uuid.UUID
	Date     *Date
}

type RateFilter struct {
	ListQuery
	ServiceTypeID  *uuid.UUID
	CalculatorType *CalculatorType
}

type MapFilterKind string

const (
	MapFilterRun        MapFilterKind = "reparto"
	MapFilterActive     MapFilterKind = "todos_activos"
	MapFilterUnassigned MapFilterKind = "pendientes_asignacion"
)

type MapFilter struct {
	Kind  MapFilterKind
	RunID uuid.UUID
}

// Paging exposes the embedded page so list callers can normalise it.
func (q *ListQuery) Paging() *Page {
	return &q.Page
}
