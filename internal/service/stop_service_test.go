package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/rumbos-envios/internal/model"
	"github.com/nurpe/rumbos-envios/internal/validation"
)

func TestStopUpdateStatus(t *testing.T) {
	ctx := context.Background()
	admin := model.Principal{UserID: uuid.New(), Role: model.UserRoleAdmin}

	setup := func(t *testing.T) (*batchFixture, *StopService, []model.Stop) {
		f := newBatchFixture(t, 2)
		run := seedRun(t, f).Run
		stops, err := f.db.stops.ListByRun(ctx, run.ID)
		require.NoError(t, err)
		return f, NewStopService(f.db.stops, f.db.runs, f.db.shipments, zerolog.Nop()), stops
	}

	t.Run("delivered propagates to the shipment", func(t *testing.T) {
		f, svc, stops := setup(t)
		delivery := stops[1]

		result, err := svc.UpdateStatus(ctx, admin, delivery.ID, model.StatusDelivered)
		require.NoError(t, err)
		assert.True(t, result.ShipmentSynced)
		assert.Equal(t, model.StatusDelivered, result.Stop.Status)

		shipment, err := f.db.shipments.Get(ctx, *delivery.ShipmentID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusDelivered, shipment.Status)
		assert.NotNil(t, shipment.DeliveredAt)
	})

	t.Run("not delivered propagates without delivery time", func(t *testing.T) {
		f, svc, stops := setup(t)
		_, err := svc.UpdateStatus(ctx, admin, stops[2].ID, model.StatusNotDelivered)
		require.NoError(t, err)

		shipment, err := f.db.shipments.Get(ctx, *stops[2].ShipmentID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusNotDelivered, shipment.Status)
		assert.Nil(t, shipment.DeliveredAt)
	})

	t.Run("propagation failure keeps the stop update", func(t *testing.T) {
		f, svc, stops := setup(t)
		f.db.fail.set("shipments.status", 1)

		result, err := svc.UpdateStatus(ctx, admin, stops[1].ID, model.StatusDelivered)
		require.NoError(t, err)
		assert.False(t, result.ShipmentSynced)

		stop, err := f.db.stops.Get(ctx, stops[1].ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusDelivered, stop.Status)

		shipment, err := f.db.shipments.Get(ctx, *stops[1].ShipmentID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPickingUp, shipment.Status)
	})

	t.Run("intermediate status does not touch the shipment", func(t *testing.T) {
		f, svc, stops := setup(t)
		result, err := svc.UpdateStatus(ctx, admin, stops[1].ID, model.StatusArriving)
		require.NoError(t, err)
		assert.False(t, result.ShipmentSynced)

		shipment, err := f.db.shipments.Get(ctx, *stops[1].ShipmentID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPickingUp, shipment.Status)
	})

	t.Run("pickup stop has no shipment", func(t *testing.T) {
		_, svc, stops := setup(t)
		result, err := svc.UpdateStatus(ctx, admin, stops[0].ID, model.StatusDelivered)
		require.NoError(t, err)
		assert.False(t, result.ShipmentSynced)
	})

	t.Run("rejects statuses outside the stop subset", func(t *testing.T) {
		_, svc, stops := setup(t)
		_, err := svc.UpdateStatus(ctx, admin, stops[1].ID, model.StatusPendingConfirmation)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("drivers only update their own runs", func(t *testing.T) {
		f, svc, stops := setup(t)
		other := uuid.New()
		_, err := svc.UpdateStatus(ctx, model.Principal{Role: model.UserRoleDriver, DriverID: &other}, stops[1].ID, model.StatusEnRoute)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		own := f.driver.ID
		_, err = svc.UpdateStatus(ctx, model.Principal{Role: model.UserRoleDriver, DriverID: &own}, stops[1].ID, model.StatusEnRoute)
		assert.NoError(t, err)
	})
}

func TestStopCRUD(t *testing.T) {
	ctx := context.Background()
	f := newBatchFixture(t, 1)
	run := seedRun(t, f).Run
	svc := NewStopService(f.db.stops, f.db.runs, f.db.shipments, zerolog.Nop())

	added, err := svc.Add(ctx, model.Stop{
		RunID:    run.ID,
		Sequence: 3,
		Type:     model.StopTypeReturnToOrigin,
		Address:  "Av. Independencia 2100",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingPickup, added.Status)

	_, err = svc.Add(ctx, model.Stop{RunID: run.ID, Type: model.StopTypeLogisticsPoint, Address: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.ListByRun(ctx, run.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.Count)

	require.NoError(t, svc.Delete(ctx, added.ID))
	_, err = svc.GetByID(ctx, added.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStopUpdateRoutesStatus(t *testing.T) {
	ctx := context.Background()
	f := newBatchFixture(t, 1)
	run := seedRun(t, f).Run
	stops, err := f.db.stops.ListByRun(ctx, run.ID)
	require.NoError(t, err)
	svc := NewStopService(f.db.stops, f.db.runs, f.db.shipments, zerolog.Nop())
	delivery := stops[1]

	t.Run("status in a generic patch reaches the shipment", func(t *testing.T) {
		patch, err := validation.Stop.DecodePatch([]byte(`{"estatus_parada": "entregado", "notas_parada": "portería"}`))
		require.NoError(t, err)

		updated, err := svc.Update(ctx, delivery.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, model.StatusDelivered, updated.Status)
		assert.NotContains(t, f.db.stops.lastChanges, "estatus_parada")

		shipment, err := f.db.shipments.Get(ctx, *delivery.ShipmentID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusDelivered, shipment.Status)
	})

	t.Run("blank status is a field error", func(t *testing.T) {
		patch, err := validation.Stop.DecodePatch([]byte(`{"estatus_parada": ""}`))
		require.NoError(t, err)

		_, err = svc.Update(ctx, delivery.ID, patch)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
