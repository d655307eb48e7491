package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/saga"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

// CreateBatch builds a whole run for one company in a single request: one
// shipment per selected client, a pickup stop at the company followed by a
// delivery stop per shipment, and the run tying them to the driver.
//
// Clients that cannot be loaded or whose shipment cannot be stored are
// skipped. A failure storing the run or its stops removes everything the
// call created. A failure linking the shipments back to the run is only
// reported; ReconcileRun repairs it.
func (s *RunService) CreateBatch(ctx context.Context, req model.BatchRunRequest) (*model.BatchRunResult, error) {
	req, err := validation.BatchRun(req)
	if err != nil {
		return nil, invalid(err)
	}

	company, err := s.companies.Get(ctx, req.CompanyID)
	if err != nil {
		return nil, gateway(err, "empresa "+req.CompanyID.String())
	}

	selections := make([]model.ClientSelection, 0, len(req.Clients))
	for _, selection := range req.Clients {
		if selection.Eligible() {
			selections = append(selections, selection)
		}
	}
	if len(selections) == 0 {
		return nil, ErrNoClientsSelected
	}

	log := s.log.With().
		Str("company_id", company.ID.String()).
		Str("driver_id", req.DriverID.String()).
		Logger()

	result := &model.BatchRunResult{
		ShipmentIDs:    []uuid.UUID{},
		SkippedClients: []model.SkippedClient{},
	}
	created := make([]model.Shipment, 0, len(selections))
	for _, selection := range selections {
		clientID := *selection.ClientID
		skip := func(reason string, err error) {
			log.Warn().Err(err).Str("client_id", clientID.String()).Str("step", "create_shipment").Msg(reason)
			result.SkippedClients = append(result.SkippedClients, model.SkippedClient{ClientID: clientID, Reason: reason})
		}

		client, err := s.clients.Get(ctx, clientID)
		if err != nil {
			skip("cliente no encontrado", err)
			continue
		}
		if client.CompanyID == nil || *client.CompanyID != company.ID {
			skip("el cliente no pertenece a la empresa", nil)
			continue
		}

		shipment, err := s.batchShipment(*company, *client, selection)
		if err != nil {
			skip("no se pudo preparar el envío", err)
			continue
		}
		if err := s.shipments.Create(ctx, &shipment); err != nil {
			skip("no se pudo crear el envío", err)
			continue
		}
		created = append(created, shipment)
		result.ShipmentIDs = append(result.ShipmentIDs, shipment.ID)
	}

	if len(created) == 0 {
		return nil, ErrNoShipmentsCreated
	}

	tx := saga.New(log)
	shipmentIDs := result.ShipmentIDs
	tx.Push("delete shipments", func(ctx context.Context) error {
		return s.shipments.DeleteMany(ctx, shipmentIDs)
	})

	run := model.DeliveryRun{
		Name:           batchRunName(req, *company),
		DriverID:       req.DriverID,
		Date:           req.Date,
		Status:         model.StatusPendingPickup,
		EstimatedStart: req.EstimatedStart,
		EstimatedEnd:   req.EstimatedEnd,
		Notes:          req.Notes,
	}
	if err := s.runs.Create(ctx, &run); err != nil {
		return nil, tx.Abort(context.WithoutCancel(ctx), gateway(err, "create reparto"))
	}
	tx.Push("delete run", func(ctx context.Context) error { return s.runs.Delete(ctx, run.ID) })
	log = log.With().Str("run_id", run.ID.String()).Logger()

	stops := make([]model.Stop, 0, len(created)+1)
	stops = append(stops, pickupStop(run.ID, *company))
	for i, shipment := range created {
		stops = append(stops, deliveryStop(run.ID, i+2, shipment))
	}
	if err := s.stops.CreateBatch(ctx, stops); err != nil {
		return nil, tx.Abort(context.WithoutCancel(ctx), gateway(err, "create paradas"))
	}

	result.Run = run
	result.StopCount = len(stops)

	if err := s.shipments.AssignToRun(ctx, shipmentIDs, run.ID, req.DriverID, model.StatusPickingUp); err != nil {
		log.Warn().Err(err).Str("step", "link_shipments").Msg("shipments not linked to run; reconcile manually")
		warning := syncWarning(err)
		result.SyncWarning = &warning
	}

	log.Info().
		Int("shipments", len(created)).
		Int("stops", len(stops)).
		Int("skipped", len(result.SkippedClients)).
		Msg("batch run created")
	return result, nil
}

func (s *RunService) batchShipment(company model.Company, client model.Client, selection model.ClientSelection) (model.Shipment, error) {
	if client.DefaultAddress == nil || *client.DefaultAddress == "" {
		return model.Shipment{}, fmt.Errorf("client %s has no default address", client.ID)
	}
	code, err := s.tracking.Next()
	if err != nil {
		return model.Shipment{}, err
	}

	companyID := company.ID
	clientName := client.FullName
	shipment := model.Shipment{
		ClientID:            client.ID,
		OriginCompanyID:     &companyID,
		OriginAddress:       deref(company.FiscalAddress),
		OriginLat:           company.Latitude,
		OriginLng:           company.Longitude,
		OriginContactName:   companyContact(company),
		OriginContactPhone:  deref(company.ContactPhone),
		DestinationAddress:  *client.DefaultAddress,
		DestinationLat:      client.DefaultLat,
		DestinationLng:      client.DefaultLng,
		DestContactName:     &clientName,
		DestContactPhone:    client.Phone,
		ServiceTypeID:       *selection.ServiceTypeID,
		PackageTypeID:       selection.PackageTypeID,
		PackageDescription:  selection.PackageDescription,
		PackageCount:        selection.PackageCount,
		EstimatedWeightKg:   selection.EstimatedWeightKg,
		SpecialInstructions: selection.SpecialInstructions,
		ShippingCost:        selection.ShippingCost,
		RequestedAt:         s.now(),
		Status:              model.StatusPendingPickup,
		TrackingNumber:      code,
	}
	if shipment.PackageCount == 0 {
		shipment.PackageCount = 1
	}
	shipment.TotalCost = shipment.ComputeTotalCost()
	return shipment, nil
}

func pickupStop(runID uuid.UUID, company model.Company) model.Stop {
	contact := companyContact(company)
	return model.Stop{
		RunID:        runID,
		Sequence:     1,
		Type:         model.StopTypeCompanyPickup,
		Address:      deref(company.FiscalAddress),
		Lat:          company.Latitude,
		Lng:          company.Longitude,
		ContactName:  &contact,
		ContactPhone: company.ContactPhone,
		Status:       model.StatusPendingPickup,
	}
}

func batchRunName(req model.BatchRunRequest, company model.Company) *string {
	if req.Name != nil && *req.Name != "" {
		return req.Name
	}
	name := fmt.Sprintf("Lote %s %s", company.Name, req.Date.String())
	return &name
}

func companyContact(company model.Company) string {
	if company.ContactPerson != nil && *company.ContactPerson != "" {
		return *company.ContactPerson
	}
	return company.Name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
