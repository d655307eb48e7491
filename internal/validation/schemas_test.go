package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/rumbos-envios/internal/model"
)

var serviceDay = model.NewDate(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))

func ptr[T any](v T) *T { return &v }

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(Errors)
	require.True(t, ok, "expected validation.Errors, got %T", err)
	return errs
}

func TestRateSchema(t *testing.T) {
	t.Run("rejects min distance above max", func(t *testing.T) {
		_, err := Rate.Create(model.Rate{
			CalculatorType: model.CalculatorExpressMoto,
			MinDistanceKm:  10,
			MaxDistanceKm:  5,
		})
		errs := fieldErrors(t, err)
		assert.Contains(t, errs, "distancia_min_km")
		assert.NotContains(t, errs, "distancia_max_km")
	})

	t.Run("rejects equal band limits", func(t *testing.T) {
		_, err := Rate.Create(model.Rate{
			CalculatorType: model.CalculatorExpressAuto,
			MinDistanceKm:  5,
			MaxDistanceKm:  5,
		})
		assert.Contains(t, fieldErrors(t, err), "distancia_min_km")
	})

	t.Run("accepts ordered band", func(t *testing.T) {
		rate, err := Rate.Create(model.Rate{
			CalculatorType: model.CalculatorLowCost72,
			MinDistanceKm:  0,
			MaxDistanceKm:  15,
			BaseFare:       50,
		})
		require.NoError(t, err)
		assert.Equal(t, 15.0, rate.MaxDistanceKm)
	})

	t.Run("update checks band only when both limits are sent", func(t *testing.T) {
		patch, err := Rate.DecodePatch([]byte(`{"distancia_min_km": 30}`))
		require.NoError(t, err)
		changes, err := Rate.Update(patch)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"distancia_min_km": 30.0}, changes)

		patch, err = Rate.DecodePatch([]byte(`{"distancia_min_km": 30, "distancia_max_km": 20}`))
		require.NoError(t, err)
		_, err = Rate.Update(patch)
		assert.Contains(t, fieldErrors(t, err), "distancia_min_km")
	})
}

func TestShipmentSchema(t *testing.T) {
	valid := func() model.Shipment {
		s := Shipment.New()
		s.ClientID = uuid.New()
		s.ServiceTypeID = uuid.New()
		s.OriginAddress = "Av. Colón 1234"
		s.OriginContactName = "Depósito"
		s.OriginContactPhone = "+54 223 555-0101"
		s.DestinationAddress = "Calle Falsa 123"
		return s
	}

	t.Run("applies defaults", func(t *testing.T) {
		s := valid()
		s.PackageCount = 0
		out, err := Shipment.Create(s)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPendingConfirmation, out.Status)
		assert.Equal(t, 1, out.PackageCount)
	})

	t.Run("requires collect amount when collecting on delivery", func(t *testing.T) {
		s := valid()
		s.CollectOnDelivery = true
		_, err := Shipment.Create(s)
		errs := fieldErrors(t, err)
		assert.Equal(t, []string{"Monto de cobro a destino es requerido si se activa la opción."}, errs["monto_cobro_destino"])

		s.CollectAmount = ptr(1500.0)
		_, err = Shipment.Create(s)
		assert.NoError(t, err)
	})

	t.Run("reports field errors by json name", func(t *testing.T) {
		s := valid()
		s.OriginContactPhone = "abc"
		s.DestinationAddress = ""
		s.Status = "perdido"
		errs := fieldErrors(t, func() error { _, err := Shipment.Create(s); return err }())
		assert.Contains(t, errs, "contacto_origen_telefono")
		assert.Contains(t, errs, "direccion_destino")
		assert.Equal(t, []string{"Estatus inválido."}, errs["estatus"])
	})

	t.Run("update ignores read only and unknown keys", func(t *testing.T) {
		patch, err := Shipment.DecodePatch([]byte(`{"tracking_number": "X", "foo": 1, "estatus": "entregado"}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"estatus"}, patch.Fields)

		changes, err := Shipment.Update(patch)
		require.NoError(t, err)
		assert.Equal(t, model.StatusDelivered, changes["estatus"])
	})

	t.Run("update validates only submitted fields", func(t *testing.T) {
		patch, err := Shipment.DecodePatch([]byte(`{"direccion_destino": "abc"}`))
		require.NoError(t, err)
		_, err = Shipment.Update(patch)
		errs := fieldErrors(t, err)
		assert.Len(t, errs, 1)
		assert.Contains(t, errs, "direccion_destino")
	})
}

func TestServiceTypeSchema(t *testing.T) {
	st := ServiceType.New()
	st.Name = "Express"
	st.MinDeliveryHours = ptr(48)
	st.MaxDeliveryHours = ptr(24)

	_, err := ServiceType.Create(st)
	assert.Contains(t, fieldErrors(t, err), "tiempo_entrega_estimado_horas_min")
	assert.True(t, st.Active)
}

func TestRunStatusSubset(t *testing.T) {
	run := Run.New()
	run.DriverID = uuid.New()
	run.Date = serviceDay
	run.Status = model.StatusArriving
	run.EstimatedStart = ptr("25:00")

	_, err := Run.Create(run)
	errs := fieldErrors(t, err)
	assert.Contains(t, errs, "estatus")
	assert.Equal(t, []string{"Formato HH:MM inválido"}, errs["hora_inicio_estimada"])

	run.Status = ""
	run.EstimatedStart = ptr("08:30")
	out, err := Run.Create(run)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingPickup, out.Status)
}

func TestDriverDefaults(t *testing.T) {
	d := Driver.New()
	d.FullName = "Ana Gómez"
	d.Phone = "2235550101"

	out, err := Driver.Create(d)
	require.NoError(t, err)
	assert.True(t, out.Active)
	assert.Equal(t, model.DriverInactive, out.Status)
}

func TestBatchRun(t *testing.T) {
	t.Run("requires company driver date and clients", func(t *testing.T) {
		_, err := BatchRun(model.BatchRunRequest{})
		errs := fieldErrors(t, err)
		for _, field := range []string{"empresa_id", "repartidor_id", "fecha_reparto", "clientes"} {
			assert.Contains(t, errs, field)
		}
	})

	t.Run("validates client rows", func(t *testing.T) {
		_, err := BatchRun(model.BatchRunRequest{
			CompanyID: uuid.New(),
			DriverID:  uuid.New(),
			Date:      serviceDay,
			Clients: []model.ClientSelection{
				{ClientID: ptr(uuid.New()), Selected: true, ShippingCost: ptr(-1.0)},
			},
		})
		assert.Contains(t, fieldErrors(t, err), "clientes[0].costo_envio")
	})

	t.Run("defaults package count", func(t *testing.T) {
		req, err := BatchRun(model.BatchRunRequest{
			CompanyID: uuid.New(),
			DriverID:  uuid.New(),
			Date:      serviceDay,
			Clients:   []model.ClientSelection{{Selected: true}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, req.Clients[0].PackageCount)
	})
}

func TestRunCreate(t *testing.T) {
	_, err := RunCreate(model.RunCreateRequest{
		DeliveryRun: model.DeliveryRun{DriverID: uuid.New(), Date: serviceDay},
	})
	assert.Contains(t, fieldErrors(t, err), "envios_ids")
}

func TestSequenceUpdates(t *testing.T) {
	assert.Error(t, SequenceUpdates(nil))
	assert.NoError(t, SequenceUpdates([]model.SequenceUpdate{{StopID: uuid.New(), Sequence: 2}}))
	assert.Contains(t, fieldErrors(t, SequenceUpdates([]model.SequenceUpdate{{StopID: uuid.New()}})), "nueva_secuencia")
}

func TestBlankStatusUpdate(t *testing.T) {
	t.Run("run", func(t *testing.T) {
		patch, err := Run.DecodePatch([]byte(`{"estatus": ""}`))
		require.NoError(t, err)
		changes, err := Run.Update(patch)
		assert.Nil(t, changes)
		assert.Equal(t, []string{"Este campo es requerido."}, fieldErrors(t, err)["estatus"])
	})

	t.Run("stop", func(t *testing.T) {
		patch, err := Stop.DecodePatch([]byte(`{"estatus_parada": ""}`))
		require.NoError(t, err)
		_, err = Stop.Update(patch)
		assert.Contains(t, fieldErrors(t, err), "estatus_parada")
	})

	t.Run("shipment", func(t *testing.T) {
		patch, err := Shipment.DecodePatch([]byte(`{"estatus": ""}`))
		require.NoError(t, err)
		_, err = Shipment.Update(patch)
		assert.Contains(t, fieldErrors(t, err), "estatus")
	})

	t.Run("driver", func(t *testing.T) {
		patch, err := Driver.DecodePatch([]byte(`{"estatus": ""}`))
		require.NoError(t, err)
		_, err = Driver.Update(patch)
		assert.Contains(t, fieldErrors(t, err), "estatus")
	})

	t.Run("known status passes", func(t *testing.T) {
		patch, err := Shipment.DecodePatch([]byte(`{"estatus": "en_camino"}`))
		require.NoError(t, err)
		changes, err := Shipment.Update(patch)
		require.NoError(t, err)
		assert.Equal(t, model.StatusEnRoute, changes["estatus"])
	})
}
