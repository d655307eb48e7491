package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/rumbos-envios/internal/model"
)

type CompanyStore interface {
	Store[model.Company, model.ListQuery]
	ListActive(ctx context.Context) ([]model.Company, error)
}

type ClientStore interface {
	Store[model.Client, model.ListQuery]
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]model.Client, error)
	ListActive(ctx context.Context) ([]model.Client, error)
}

type DriverStore interface {
	Store[model.Driver, model.DriverFilter]
	ListAvailable(ctx context.Context) ([]model.Driver, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.DriverStatus) error
}

type PackageTypeStore interface {
	Store[model.PackageType, model.CatalogFilter]
	ListActive(ctx context.Context) ([]model.PackageType, error)
}

type ServiceTypeStore interface {
	Store[model.ServiceType, model.CatalogFilter]
	ListActive(ctx context.Context) ([]model.ServiceType, error)
}

type RateStore interface {
	Store[model.Rate, model.RateFilter]
	ListActiveByCalculator(ctx context.Context, calculator model.CalculatorType) ([]model.Rate, error)
}

type ShipmentStore interface {
	Store[model.Shipment, model.ShipmentFilter]
	ListPendingForSelect(ctx context.Context, companyID *uuid.UUID, limit int) ([]model.Shipment, error)
	ListForMap(ctx context.Context, filter model.MapFilter) ([]model.MapPoint, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Shipment, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
	AssignToRun(ctx context.Context, ids []uuid.UUID, runID, driverID uuid.UUID, status model.ShipmentStatus) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus, deliveredAt *time.Time) error
	CountByStatus(ctx context.Context) (map[model.ShipmentStatus]int64, error)
}

type RunStore interface {
	Store[model.DeliveryRun, model.RunFilter]
	GetWithStops(ctx context.Context, id uuid.UUID) (*model.DeliveryRun, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus) error
}

type StopStore interface {
	Create(ctx context.Context, value *model.Stop) error
	Get(ctx context.Context, id uuid.UUID) (*model.Stop, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Stop, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreateBatch(ctx context.Context, stops []model.Stop) error
	ListByRun(ctx context.Context, runID uuid.UUID) ([]model.Stop, error)
	UpdateSequence(ctx context.Context, id uuid.UUID, sequence int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus, at time.Time) error
}

type TrackingGenerator interface {
	Next() (string, error)
}
