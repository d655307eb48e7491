package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

const pendingSelectLimit = 100

type ShipmentExporter interface {
	Shipments(rows []model.Shipment) ([]byte, error)
}

type ShipmentService struct {
	entity[model.Shipment, model.ShipmentFilter]
	shipments ShipmentStore
	tracking  TrackingGenerator
	exporter  ShipmentExporter
	now       func() time.Time
}

func NewShipmentService(store ShipmentStore, tracking TrackingGenerator, exporter ShipmentExporter, pager Pager) *ShipmentService {
	return &ShipmentService{
		entity: entity[model.Shipment, model.ShipmentFilter]{
			store: store, schema: validation.Shipment, pager: pager, label: "envío",
		},
		shipments: store,
		tracking:  tracking,
		exporter:  exporter,
		now:       time.Now,
	}
}

// Add validates the shipment, assigns a fresh tracking code and stores it.
// Any tracking code sent by the caller is replaced.
func (s *ShipmentService) Add(ctx context.Context, value model.Shipment) (*model.Shipment, error) {
	valid, err := s.schema.Create(value)
	if err != nil {
		return nil, invalid(err)
	}

	code, err := s.tracking.Next()
	if err != nil {
		return nil, err
	}
	valid.TrackingNumber = code
	if valid.RequestedAt.IsZero() {
		valid.RequestedAt = s.now()
	}
	valid.TotalCost = valid.ComputeTotalCost()

	if err := s.shipments.Create(ctx, &valid); err != nil {
		return nil, gateway(err, "create envío")
	}
	return &valid, nil
}

var costColumns = map[string]struct{}{
	"costo_envio":     {},
	"costo_seguro":    {},
	"costo_adicional": {},
}

// Update applies a partial update and recomputes costo_total when any
// cost component changes.
func (s *ShipmentService) Update(ctx context.Context, id uuid.UUID, patch validation.Patch[model.Shipment]) (*model.Shipment, error) {
	changes, err := s.schema.Update(patch)
	if err != nil {
		return nil, invalid(err)
	}

	if touchesCosts(changes) {
		current, err := s.shipments.Get(ctx, id)
		if err != nil {
			return nil, gateway(err, "envío")
		}
		merged := *current
		if v, ok := changes["costo_envio"]; ok {
			merged.ShippingCost = v.(*float64)
		}
		if v, ok := changes["costo_seguro"]; ok {
			merged.InsuranceCost = v.(*float64)
		}
		if v, ok := changes["costo_adicional"]; ok {
			merged.ExtraCost = v.(*float64)
		}
		changes["costo_total"] = merged.ComputeTotalCost()
	}

	updated, err := s.shipments.Update(ctx, id, changes)
	if err != nil {
		return nil, gateway(err, "envío")
	}
	return updated, nil
}

func touchesCosts(changes map[string]any) bool {
	for column := range changes {
		if _, ok := costColumns[column]; ok {
			return true
		}
	}
	return false
}

// ListPendingForSelect returns shipments that can still be added to a run.
func (s *ShipmentService) ListPendingForSelect(ctx context.Context, companyID *uuid.UUID) ([]model.Shipment, error) {
	rows, err := s.shipments.ListPendingForSelect(ctx, companyID, pendingSelectLimit)
	if err != nil {
		return nil, gateway(err, "list envíos pendientes")
	}
	return rows, nil
}

func (s *ShipmentService) ListForMap(ctx context.Context, filter model.MapFilter) ([]model.MapPoint, error) {
	switch filter.Kind {
	case model.MapFilterRun:
		if filter.RunID == uuid.Nil {
			return nil, fmt.Errorf("%w: reparto_id is required", ErrInvalidInput)
		}
	case model.MapFilterActive, model.MapFilterUnassigned:
	default:
		return nil, fmt.Errorf("%w: unknown map filter %q", ErrInvalidInput, filter.Kind)
	}
	points, err := s.shipments.ListForMap(ctx, filter)
	if err != nil {
		return nil, gateway(err, "list envíos para mapa")
	}
	return points, nil
}

// StatusCounts reports how many shipments sit in each status, with every
// status present.
func (s *ShipmentService) StatusCounts(ctx context.Context) (map[model.ShipmentStatus]int64, error) {
	counts, err := s.shipments.CountByStatus(ctx)
	if err != nil {
		return nil, gateway(err, "count envíos")
	}
	out := make(map[model.ShipmentStatus]int64, len(model.AllStatuses()))
	for _, status := range model.AllStatuses() {
		out[status] = counts[status]
	}
	return out, nil
}

// ExportShipments renders every shipment matching the filter, ignoring
// pagination.
func (s *ShipmentService) ExportShipments(ctx context.Context, filter model.ShipmentFilter) (*ExportResult, error) {
	filter.Page = model.Page{}
	result, err := s.shipments.List(ctx, filter)
	if err != nil {
		return nil, gateway(err, "list envíos")
	}
	content, err := s.exporter.Shipments(result.Data)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("envios-%s.xlsx", s.now().Format("20060102-1504")),
		Content:  content,
	}, nil
}
