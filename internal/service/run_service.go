package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/saga"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

type RunSheetRenderer interface {
	RunSheet(run model.DeliveryRun) ([]byte, error)
}

type RunDeps struct {
	Runs      RunStore
	Stops     StopStore
	Shipments ShipmentStore
	Companies CompanyStore
	Clients   ClientStore
	Drivers   DriverStore
	Tracking  TrackingGenerator
	Sheets    RunSheetRenderer
	Pager     Pager
	Log       zerolog.Logger
}

type RunService struct {
	entity[model.DeliveryRun, model.RunFilter]
	runs      RunStore
	stops     StopStore
	shipments ShipmentStore
	companies CompanyStore
	clients   ClientStore
	drivers   DriverStore
	tracking  TrackingGenerator
	sheets    RunSheetRenderer
	log       zerolog.Logger
	now       func() time.Time
}

func NewRunService(deps RunDeps) *RunService {
	return &RunService{
		entity: entity[model.DeliveryRun, model.RunFilter]{
			store: deps.Runs, schema: validation.Run, pager: deps.Pager, label: "reparto",
		},
		runs:      deps.Runs,
		stops:     deps.Stops,
		shipments: deps.Shipments,
		companies: deps.Companies,
		clients:   deps.Clients,
		drivers:   deps.Drivers,
		tracking:  deps.Tracking,
		sheets:    deps.Sheets,
		log:       deps.Log.With().Str("component", "runs").Logger(),
		now:       time.Now,
	}
}

// GetByID returns the run with its driver and ordered stops.
func (s *RunService) GetByID(ctx context.Context, id uuid.UUID) (*model.DeliveryRun, error) {
	run, err := s.runs.GetWithStops(ctx, id)
	if err != nil {
		return nil, gateway(err, "reparto")
	}
	return run, nil
}

type RunCreateResult struct {
	Run         model.DeliveryRun `json:"reparto"`
	StopCount   int               `json:"paradas_creadas"`
	SyncWarning *string           `json:"advertencia_sincronizacion,omitempty"`
}

// Create plans a run over shipments that already exist: one delivery stop
// per shipment in the given order, then the shipments are linked back.
func (s *RunService) Create(ctx context.Context, req model.RunCreateRequest) (*RunCreateResult, error) {
	req, err := validation.RunCreate(req)
	if err != nil {
		return nil, invalid(err)
	}

	found, err := s.shipments.ListByIDs(ctx, req.ShipmentIDs)
	if err != nil {
		return nil, gateway(err, "list envíos")
	}
	byID := make(map[uuid.UUID]model.Shipment, len(found))
	for _, shipment := range found {
		byID[shipment.ID] = shipment
	}
	ordered := make([]model.Shipment, 0, len(req.ShipmentIDs))
	for _, id := range req.ShipmentIDs {
		shipment, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: envío %s", ErrNotFound, id)
		}
		ordered = append(ordered, shipment)
	}

	log := s.log.With().Str("driver_id", req.DriverID.String()).Logger()
	tx := saga.New(log)

	run := req.DeliveryRun
	if err := s.runs.Create(ctx, &run); err != nil {
		return nil, gateway(err, "create reparto")
	}
	tx.Push("delete run", func(ctx context.Context) error { return s.runs.Delete(ctx, run.ID) })

	stops := make([]model.Stop, 0, len(ordered))
	for i, shipment := range ordered {
		stops = append(stops, deliveryStop(run.ID, i+1, shipment))
	}
	if err := s.stops.CreateBatch(ctx, stops); err != nil {
		return nil, tx.Abort(context.WithoutCancel(ctx), gateway(err, "create paradas"))
	}

	result := &RunCreateResult{Run: run, StopCount: len(stops)}
	if err := s.shipments.AssignToRun(ctx, req.ShipmentIDs, run.ID, run.DriverID, model.StatusPickingUp); err != nil {
		log.Warn().Err(err).Str("run_id", run.ID.String()).Str("step", "link_shipments").
			Msg("shipments not linked to run; reconcile manually")
		warning := syncWarning(err)
		result.SyncWarning = &warning
	}
	return result, nil
}

// UpdateStatus sets the run status. The driver status follows on a best
// effort basis.
func (s *RunService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ShipmentStatus) (*model.DeliveryRun, error) {
	if !status.AllowedForRun() {
		return nil, fmt.Errorf("%w: estatus %q not allowed for a run", ErrInvalidInput, status)
	}
	run, err := s.runs.Get(ctx, id)
	if err != nil {
		return nil, gateway(err, "reparto")
	}
	if err := s.runs.UpdateStatus(ctx, id, status); err != nil {
		return nil, gateway(err, "reparto")
	}
	run.Status = status

	if driverStatus, ok := driverStatusFor(status); ok {
		if err := s.drivers.UpdateStatus(ctx, run.DriverID, driverStatus); err != nil {
			s.log.Warn().Err(err).
				Str("run_id", id.String()).
				Str("driver_id", run.DriverID.String()).
				Str("step", "driver_sync").
				Msg("driver status not updated")
		}
	}
	return run, nil
}

func driverStatusFor(status model.ShipmentStatus) (model.DriverStatus, bool) {
	switch status {
	case model.StatusPickingUp, model.StatusEnRoute:
		return model.DriverEnRoute, true
	case model.StatusDelivered, model.StatusCancelled, model.StatusFailed:
		return model.DriverAvailable, true
	default:
		return "", false
	}
}

type MoveResult struct {
	Moved bool         `json:"movida"`
	Stops []model.Stop `json:"paradas_reparto"`
}

// MoveStop swaps a stop with its neighbour. Moving past either end is a
// no-op. A failed write is returned as is; the caller re-reads the run.
func (s *RunService) MoveStop(ctx context.Context, runID, stopID uuid.UUID, direction model.MoveDirection) (*MoveResult, error) {
	if direction != model.MoveUp && direction != model.MoveDown {
		return nil, fmt.Errorf("%w: direction must be up or down", ErrInvalidInput)
	}
	stops, err := s.stops.ListByRun(ctx, runID)
	if err != nil {
		return nil, gateway(err, "list paradas")
	}

	index := -1
	for i := range stops {
		if stops[i].ID == stopID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("%w: parada %s in reparto %s", ErrNotFound, stopID, runID)
	}

	neighbour := index - 1
	if direction == model.MoveDown {
		neighbour = index + 1
	}
	if neighbour < 0 || neighbour >= len(stops) {
		return &MoveResult{Moved: false, Stops: stops}, nil
	}

	a, b := &stops[index], &stops[neighbour]
	a.Sequence, b.Sequence = b.Sequence, a.Sequence
	if err := s.stops.UpdateSequence(ctx, a.ID, a.Sequence); err != nil {
		return nil, gateway(err, "update parada")
	}
	if err := s.stops.UpdateSequence(ctx, b.ID, b.Sequence); err != nil {
		return nil, gateway(err, "update parada")
	}
	stops[index], stops[neighbour] = stops[neighbour], stops[index]
	return &MoveResult{Moved: true, Stops: stops}, nil
}

// ReorderStops writes each new sequence in order and stops at the first
// failure.
func (s *RunService) ReorderStops(ctx context.Context, runID uuid.UUID, updates []model.SequenceUpdate) ([]model.Stop, error) {
	if err := validation.SequenceUpdates(updates); err != nil {
		return nil, invalid(err)
	}
	stops, err := s.stops.ListByRun(ctx, runID)
	if err != nil {
		return nil, gateway(err, "list paradas")
	}
	owned := make(map[uuid.UUID]struct{}, len(stops))
	for _, stop := range stops {
		owned[stop.ID] = struct{}{}
	}
	for _, update := range updates {
		if _, ok := owned[update.StopID]; !ok {
			return nil, fmt.Errorf("%w: parada %s does not belong to reparto %s", ErrInvalidInput, update.StopID, runID)
		}
	}

	for _, update := range updates {
		if err := s.stops.UpdateSequence(ctx, update.StopID, update.Sequence); err != nil {
			return nil, gateway(err, "update parada")
		}
	}
	reordered, err := s.stops.ListByRun(ctx, runID)
	if err != nil {
		return nil, gateway(err, "list paradas")
	}
	return reordered, nil
}

type ReconcileResult struct {
	RunID    uuid.UUID   `json:"reparto_id"`
	Relinked []uuid.UUID `json:"envios_vinculados"`
}

// ReconcileRun re-links every shipment served by the run's stops that lost
// or never got its run back-reference. It only runs when asked to.
func (s *RunService) ReconcileRun(ctx context.Context, runID uuid.UUID) (*ReconcileResult, error) {
	run, err := s.runs.Get(ctx, runID)
	if err != nil {
		return nil, gateway(err, "reparto")
	}
	stops, err := s.stops.ListByRun(ctx, runID)
	if err != nil {
		return nil, gateway(err, "list paradas")
	}

	ids := make([]uuid.UUID, 0, len(stops))
	for _, stop := range stops {
		if stop.ShipmentID != nil {
			ids = append(ids, *stop.ShipmentID)
		}
	}
	shipments, err := s.shipments.ListByIDs(ctx, ids)
	if err != nil {
		return nil, gateway(err, "list envíos")
	}

	result := &ReconcileResult{RunID: runID, Relinked: []uuid.UUID{}}
	for _, shipment := range shipments {
		if shipment.RunID == nil {
			result.Relinked = append(result.Relinked, shipment.ID)
		}
	}
	if len(result.Relinked) == 0 {
		return result, nil
	}
	if err := s.shipments.AssignToRun(ctx, result.Relinked, run.ID, run.DriverID, model.StatusPickingUp); err != nil {
		return nil, gateway(err, "link envíos")
	}
	s.log.Info().Str("run_id", runID.String()).Int("relinked", len(result.Relinked)).Msg("run reconciled")
	return result, nil
}

// RunSheet renders the printable route sheet of a run.
func (s *RunService) RunSheet(ctx context.Context, runID uuid.UUID) (*ExportResult, error) {
	run, err := s.runs.GetWithStops(ctx, runID)
	if err != nil {
		return nil, gateway(err, "reparto")
	}
	content, err := s.sheets.RunSheet(*run)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: runSheetFileName(*run), Content: content}, nil
}

func deliveryStop(runID uuid.UUID, sequence int, shipment model.Shipment) model.Stop {
	shipmentID := shipment.ID
	return model.Stop{
		RunID:        runID,
		ShipmentID:   &shipmentID,
		Sequence:     sequence,
		Type:         model.StopTypeClientDelivery,
		Address:      shipment.DestinationAddress,
		Reference:    shipment.DestinationReference,
		Lat:          shipment.DestinationLat,
		Lng:          shipment.DestinationLng,
		ContactName:  shipment.DestContactName,
		ContactPhone: shipment.DestContactPhone,
		Notes:        shipment.SpecialInstructions,
		Status:       model.StatusPendingPickup,
	}
}

func syncWarning(err error) string {
	return fmt.Sprintf("los envíos no quedaron vinculados al reparto: %v", err)
}
