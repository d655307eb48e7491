package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

type StopService struct {
	stops     StopStore
	runs      RunStore
	shipments ShipmentStore
	log       zerolog.Logger
	now       func() time.Time
}

func NewStopService(stops StopStore, runs RunStore, shipments ShipmentStore, log zerolog.Logger) *StopService {
	return &StopService{
		stops:     stops,
		runs:      runs,
		shipments: shipments,
		log:       log.With().Str("component", "stops").Logger(),
		now:       time.Now,
	}
}

func (s *StopService) Add(ctx context.Context, value model.Stop) (*model.Stop, error) {
	valid, err := validation.Stop.Create(value)
	if err != nil {
		return nil, invalid(err)
	}
	if err := s.stops.Create(ctx, &valid); err != nil {
		return nil, gateway(err, "create parada")
	}
	return &valid, nil
}

// Update writes the submitted fields. A status change goes through the same
// path as UpdateStatus so the linked shipment follows it.
func (s *StopService) Update(ctx context.Context, id uuid.UUID, patch validation.Patch[model.Stop]) (*model.Stop, error) {
	changes, err := validation.Stop.Update(patch)
	if err != nil {
		return nil, invalid(err)
	}
	status, statusSent := changes["estatus_parada"].(model.ShipmentStatus)
	delete(changes, "estatus_parada")

	updated, err := s.stops.Update(ctx, id, changes)
	if err != nil {
		return nil, gateway(err, "parada")
	}
	if !statusSent {
		return updated, nil
	}
	result, err := s.setStatus(ctx, *updated, status)
	if err != nil {
		return nil, err
	}
	return &result.Stop, nil
}

func (s *StopService) Delete(ctx context.Context, id uuid.UUID) error {
	return gateway(s.stops.Delete(ctx, id), "parada")
}

func (s *StopService) GetByID(ctx context.Context, id uuid.UUID) (*model.Stop, error) {
	stop, err := s.stops.Get(ctx, id)
	if err != nil {
		return nil, gateway(err, "parada")
	}
	return stop, nil
}

func (s *StopService) ListByRun(ctx context.Context, runID uuid.UUID) (model.ListResult[model.Stop], error) {
	stops, err := s.stops.ListByRun(ctx, runID)
	if err != nil {
		return model.ListResult[model.Stop]{}, gateway(err, "list paradas")
	}
	return model.ListResult[model.Stop]{Data: stops, Count: int64(len(stops))}, nil
}

type StopStatusResult struct {
	Stop           model.Stop `json:"parada"`
	ShipmentSynced bool       `json:"envio_actualizado"`
}

// UpdateStatus sets a stop status. Closing statuses are copied onto the
// linked shipment; a failure there is logged and does not undo the stop.
// Drivers may only touch stops of their own runs.
func (s *StopService) UpdateStatus(ctx context.Context, principal model.Principal, id uuid.UUID, status model.ShipmentStatus) (*StopStatusResult, error) {
	if !status.AllowedForStop() {
		return nil, fmt.Errorf("%w: estatus %q not allowed for a stop", ErrInvalidInput, status)
	}
	stop, err := s.stops.Get(ctx, id)
	if err != nil {
		return nil, gateway(err, "parada")
	}
	if principal.IsDriver() {
		run, err := s.runs.Get(ctx, stop.RunID)
		if err != nil {
			return nil, gateway(err, "reparto")
		}
		if principal.DriverID == nil || *principal.DriverID != run.DriverID {
			return nil, ErrPermissionDenied
		}
	} else if !principal.CanManage() {
		return nil, ErrPermissionDenied
	}

	return s.setStatus(ctx, *stop, status)
}

func (s *StopService) setStatus(ctx context.Context, stop model.Stop, status model.ShipmentStatus) (*StopStatusResult, error) {
	id := stop.ID
	at := s.now()
	if err := s.stops.UpdateStatus(ctx, id, status, at); err != nil {
		return nil, gateway(err, "parada")
	}
	stop.Status = status

	result := &StopStatusResult{Stop: stop}
	if !status.PropagatesToShipment() || stop.ShipmentID == nil {
		return result, nil
	}

	var deliveredAt *time.Time
	if status == model.StatusDelivered {
		deliveredAt = &at
	}
	if err := s.shipments.UpdateStatus(ctx, *stop.ShipmentID, status, deliveredAt); err != nil {
		s.log.Warn().Err(err).
			Str("stop_id", id.String()).
			Str("shipment_id", stop.ShipmentID.String()).
			Str("step", "propagate_status").
			Msg("shipment status not updated")
		return result, nil
	}
	result.ShipmentSynced = true
	return result, nil
}
