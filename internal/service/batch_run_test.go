package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

func ptr[T any](v T) *T { return &v }

type batchFixture struct {
	db          *memDB
	svc         *RunService
	company     model.Company
	driver      model.Driver
	serviceType model.ServiceType
	clients     []model.Client
}

func newBatchFixture(t *testing.T, clientCount int) *batchFixture {
	t.Helper()
	db := newMemDB()
	ctx := context.Background()

	f := &batchFixture{db: db}
	f.company = model.Company{
		Name:          "Distribuidora Sur",
		FiscalAddress: ptr("Av. Independencia 2100"),
		Latitude:      ptr(-38.0),
		Longitude:     ptr(-57.55),
		ContactPerson: ptr("Laura Díaz"),
		ContactPhone:  ptr("2234001122"),
		Active:        true,
	}
	require.NoError(t, db.companies.Create(ctx, &f.company))

	f.driver = model.Driver{FullName: "Mario Ruiz", Phone: "2235009988", Status: model.DriverAvailable, Active: true}
	require.NoError(t, db.drivers.Create(ctx, &f.driver))

	f.serviceType = model.ServiceType{Name: "Express", Active: true}
	require.NoError(t, db.serviceTypes.Create(ctx, &f.serviceType))

	for i := 0; i < clientCount; i++ {
		client := model.Client{
			FullName:       []string{"Ana", "Bruno", "Carla", "Diego", "Elena"}[i%5],
			DefaultAddress: ptr("Calle " + string(rune('A'+i)) + " 100"),
			DefaultLat:     ptr(-38.01 - float64(i)/100),
			DefaultLng:     ptr(-57.56),
			Phone:          ptr("22350000" + string(rune('0'+i))),
			CompanyID:      &f.company.ID,
			Active:         true,
		}
		require.NoError(t, db.clients.Create(ctx, &client))
		f.clients = append(f.clients, client)
	}

	f.svc = NewRunService(RunDeps{
		Runs:      db.runs,
		Stops:     db.stops,
		Shipments: db.shipments,
		Companies: db.companies,
		Clients:   db.clients,
		Drivers:   db.drivers,
		Tracking:  &seqTracking{},
		Sheets:    fakeSheets{},
		Pager:     Pager{DefaultSize: 10, MaxSize: 100},
		Log:       zerolog.Nop(),
	})
	return f
}

func (f *batchFixture) request(clientIDs ...uuid.UUID) model.BatchRunRequest {
	req := model.BatchRunRequest{
		CompanyID: f.company.ID,
		DriverID:  f.driver.ID,
		Date:      model.NewDate(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)),
	}
	for _, id := range clientIDs {
		id := id
		req.Clients = append(req.Clients, model.ClientSelection{
			ClientID:      &id,
			Selected:      true,
			ServiceTypeID: &f.serviceType.ID,
			ShippingCost:  ptr(1200.0),
		})
	}
	return req
}

func (f *batchFixture) clientIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(f.clients))
	for i, c := range f.clients {
		ids[i] = c.ID
	}
	return ids
}

func (f *batchFixture) assertNothingWritten(t *testing.T) {
	t.Helper()
	assert.Empty(t, f.db.shipments.all())
	assert.Empty(t, f.db.runs.all())
	assert.Empty(t, f.db.stops.all())
}

func TestCreateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("three selected clients", func(t *testing.T) {
		f := newBatchFixture(t, 3)

		result, err := f.svc.CreateBatch(ctx, f.request(f.clientIDs()...))
		require.NoError(t, err)

		runs := f.db.runs.all()
		require.Len(t, runs, 1)
		run := runs[0]
		assert.Equal(t, model.StatusPendingPickup, run.Status)
		assert.Equal(t, f.driver.ID, run.DriverID)
		assert.Equal(t, "Lote Distribuidora Sur 2026-05-04", *run.Name)
		assert.Equal(t, run.ID, result.Run.ID)

		shipments := f.db.shipments.all()
		require.Len(t, shipments, 3)
		for i, s := range shipments {
			assert.Equal(t, f.clients[i].ID, s.ClientID)
			assert.Equal(t, model.StatusPickingUp, s.Status)
			require.NotNil(t, s.RunID)
			assert.Equal(t, run.ID, *s.RunID)
			assert.Equal(t, f.driver.ID, *s.AssignedDriverID)
			assert.Equal(t, "Av. Independencia 2100", s.OriginAddress)
			assert.Equal(t, "Laura Díaz", s.OriginContactName)
			assert.Equal(t, *f.clients[i].DefaultAddress, s.DestinationAddress)
			assert.Equal(t, 1, s.PackageCount)
			assert.InDelta(t, 1200.0, *s.TotalCost, 0.001)
			assert.NotEmpty(t, s.TrackingNumber)
		}

		stops, err := f.db.stops.ListByRun(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, stops, 4)
		assert.Equal(t, 1, stops[0].Sequence)
		assert.Equal(t, model.StopTypeCompanyPickup, stops[0].Type)
		assert.Nil(t, stops[0].ShipmentID)
		assert.Equal(t, "Av. Independencia 2100", stops[0].Address)
		for i, stop := range stops[1:] {
			assert.Equal(t, i+2, stop.Sequence)
			assert.Equal(t, model.StopTypeClientDelivery, stop.Type)
			require.NotNil(t, stop.ShipmentID)
			assert.Equal(t, shipments[i].ID, *stop.ShipmentID)
		}

		assert.Len(t, result.ShipmentIDs, 3)
		assert.Equal(t, 4, result.StopCount)
		assert.Empty(t, result.SkippedClients)
		assert.Nil(t, result.SyncWarning)
	})

	t.Run("invalid request writes nothing", func(t *testing.T) {
		f := newBatchFixture(t, 1)
		req := f.request(f.clientIDs()...)
		req.DriverID = uuid.Nil

		_, err := f.svc.CreateBatch(ctx, req)
		require.ErrorIs(t, err, ErrInvalidInput)
		var fieldErrs validation.Errors
		require.True(t, errors.As(err, &fieldErrs))
		assert.Contains(t, fieldErrs, "repartidor_id")
		f.assertNothingWritten(t)
	})

	t.Run("unknown company aborts", func(t *testing.T) {
		f := newBatchFixture(t, 2)
		req := f.request(f.clientIDs()...)
		req.CompanyID = uuid.New()

		_, err := f.svc.CreateBatch(ctx, req)
		require.ErrorIs(t, err, ErrNotFound)
		f.assertNothingWritten(t)
	})

	t.Run("no eligible clients", func(t *testing.T) {
		f := newBatchFixture(t, 2)
		req := f.request(f.clientIDs()...)
		req.Clients[0].Selected = false
		req.Clients[1].ServiceTypeID = nil

		_, err := f.svc.CreateBatch(ctx, req)
		require.ErrorIs(t, err, ErrNoClientsSelected)
		f.assertNothingWritten(t)
	})

	t.Run("missing client is skipped", func(t *testing.T) {
		f := newBatchFixture(t, 3)
		missing := uuid.New()
		ids := f.clientIDs()
		req := f.request(ids[0], missing, ids[2])

		result, err := f.svc.CreateBatch(ctx, req)
		require.NoError(t, err)

		assert.Len(t, f.db.shipments.all(), 2)
		assert.Len(t, f.db.stops.all(), 3)
		assert.Len(t, f.db.runs.all(), 1)
		require.Len(t, result.SkippedClients, 1)
		assert.Equal(t, missing, result.SkippedClients[0].ClientID)
	})

	t.Run("client of another company is skipped", func(t *testing.T) {
		f := newBatchFixture(t, 2)
		other := uuid.New()
		outsider := model.Client{FullName: "Fabián", CompanyID: &other, Active: true}
		require.NoError(t, f.db.clients.Create(ctx, &outsider))
		orphan := model.Client{FullName: "Gisela", Active: true}
		require.NoError(t, f.db.clients.Create(ctx, &orphan))

		ids := f.clientIDs()
		result, err := f.svc.CreateBatch(ctx, f.request(ids[0], outsider.ID, orphan.ID, ids[1]))
		require.NoError(t, err)

		assert.Len(t, result.ShipmentIDs, 2)
		assert.Len(t, f.db.stops.all(), 3)
		require.Len(t, result.SkippedClients, 2)
		assert.Equal(t, outsider.ID, result.SkippedClients[0].ClientID)
		assert.Equal(t, orphan.ID, result.SkippedClients[1].ClientID)
		assert.Equal(t, "el cliente no pertenece a la empresa", result.SkippedClients[0].Reason)
		for _, s := range f.db.shipments.all() {
			assert.NotEqual(t, outsider.ID, s.ClientID)
			assert.NotEqual(t, orphan.ID, s.ClientID)
		}
	})

	t.Run("failed shipment insert is skipped", func(t *testing.T) {
		f := newBatchFixture(t, 3)
		f.db.fail.set("shipments.create", 1)

		result, err := f.svc.CreateBatch(ctx, f.request(f.clientIDs()...))
		require.NoError(t, err)
		assert.Len(t, result.ShipmentIDs, 2)
		assert.Len(t, result.SkippedClients, 1)
		assert.Equal(t, f.clients[0].ID, result.SkippedClients[0].ClientID)
	})

	t.Run("no shipment created aborts before the run", func(t *testing.T) {
		f := newBatchFixture(t, 2)
		f.db.fail.set("shipments.create", 0)

		_, err := f.svc.CreateBatch(ctx, f.request(f.clientIDs()...))
		require.ErrorIs(t, err, ErrNoShipmentsCreated)
		f.assertNothingWritten(t)
	})

	t.Run("run insert failure removes shipments", func(t *testing.T) {
		f := newBatchFixture(t, 3)
		f.db.fail.set("runs.create", 0)

		_, err := f.svc.CreateBatch(ctx, f.request(f.clientIDs()...))
		require.ErrorIs(t, err, ErrGateway)
		f.assertNothingWritten(t)
	})

	t.Run("stop insert failure removes run and shipments", func(t *testing.T) {
		f := newBatchFixture(t, 3)
		f.db.fail.set("stops.createBatch", 0)

		_, err := f.svc.CreateBatch(ctx, f.request(f.clientIDs()...))
		require.ErrorIs(t, err, ErrGateway)
		f.assertNothingWritten(t)

		list, err := f.db.shipments.List(ctx, model.ShipmentFilter{})
		require.NoError(t, err)
		assert.Zero(t, list.Count)
	})

	t.Run("incomplete rollback is reported", func(t *testing.T) {
		f := newBatchFixture(t, 1)
		f.db.fail.set("stops.createBatch", 0)
		f.db.fail.set("shipments.deleteMany", 0)

		_, err := f.svc.CreateBatch(ctx, f.request(f.clientIDs()...))
		require.ErrorIs(t, err, ErrGateway)
		assert.Contains(t, err.Error(), "rollback incomplete")
		assert.Empty(t, f.db.runs.all())
		assert.Len(t, f.db.shipments.all(), 1)
	})

	t.Run("link failure keeps run and can be reconciled", func(t *testing.T) {
		f := newBatchFixture(t, 2)
		f.db.fail.set("shipments.assign", 1)

		result, err := f.svc.CreateBatch(ctx, f.request(f.clientIDs()...))
		require.NoError(t, err)
		require.NotNil(t, result.SyncWarning)
		assert.Len(t, f.db.runs.all(), 1)
		assert.Len(t, f.db.stops.all(), 3)
		for _, s := range f.db.shipments.all() {
			assert.Nil(t, s.RunID)
			assert.Equal(t, model.StatusPendingPickup, s.Status)
		}

		reconciled, err := f.svc.ReconcileRun(ctx, result.Run.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, result.ShipmentIDs, reconciled.Relinked)
		for _, s := range f.db.shipments.all() {
			require.NotNil(t, s.RunID)
			assert.Equal(t, result.Run.ID, *s.RunID)
			assert.Equal(t, model.StatusPickingUp, s.Status)
		}

		again, err := f.svc.ReconcileRun(ctx, result.Run.ID)
		require.NoError(t, err)
		assert.Empty(t, again.Relinked)
	})
}
