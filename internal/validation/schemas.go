package validation

import (
	"github.com/nurpe/rumbos-envios/internal/model"
)

var (
	Company = NewSchema(
		func() model.Company { return model.Company{Active: true} },
		nil,
	)

	Client = NewSchema(
		func() model.Client { return model.Client{Active: true} },
		nil,
	)

	Driver = NewSchema(
		func() model.Driver { return model.Driver{Active: true} },
		func(d *model.Driver) {
			if d.Status == "" {
				d.Status = model.DriverInactive
			}
		},
	)

	PackageType = NewSchema(
		func() model.PackageType { return model.PackageType{Active: true} },
		nil,
	)

	ServiceType = NewSchema(
		func() model.ServiceType { return model.ServiceType{Active: true} },
		nil,
		deliveryHoursOrdered,
	)

	Rate = NewSchema(
		func() model.Rate { return model.Rate{Active: true} },
		nil,
		distanceBandOrdered,
	)

	Shipment = NewSchema(
		func() model.Shipment { return model.Shipment{PackageCount: 1} },
		func(s *model.Shipment) {
			if s.Status == "" {
				s.Status = model.StatusPendingConfirmation
			}
			if s.PackageCount == 0 {
				s.PackageCount = 1
			}
		},
		collectAmountRequired,
	)

	Run = NewSchema(
		func() model.DeliveryRun { return model.DeliveryRun{} },
		func(r *model.DeliveryRun) {
			if r.Status == "" {
				r.Status = model.StatusPendingPickup
			}
		},
	)

	Stop = NewSchema(
		func() model.Stop { return model.Stop{} },
		func(s *model.Stop) {
			if s.Status == "" {
				s.Status = model.StatusPendingPickup
			}
		},
	)
)

func collectAmountRequired(s *model.Shipment, present func(string) bool, errs Errors) {
	if !present("requiere_cobro_destino") || !s.CollectOnDelivery {
		return
	}
	if s.CollectAmount == nil {
		errs.Add("monto_cobro_destino", "Monto de cobro a destino es requerido si se activa la opción.")
		return
	}
	if *s.CollectAmount < 0 {
		errs.Add("monto_cobro_destino", "Monto debe ser no negativo.")
	}
}

func deliveryHoursOrdered(s *model.ServiceType, present func(string) bool, errs Errors) {
	if !present("tiempo_entrega_estimado_horas_min") || !present("tiempo_entrega_estimado_horas_max") {
		return
	}
	if s.MinDeliveryHours == nil || s.MaxDeliveryHours == nil {
		return
	}
	if *s.MinDeliveryHours > *s.MaxDeliveryHours {
		errs.Add("tiempo_entrega_estimado_horas_min", "El tiempo mínimo no puede ser mayor al máximo.")
	}
}

func distanceBandOrdered(r *model.Rate, present func(string) bool, errs Errors) {
	if !present("distancia_min_km") || !present("distancia_max_km") {
		return
	}
	if r.MinDistanceKm >= r.MaxDistanceKm {
		errs.Add("distancia_min_km", "Distancia mínima debe ser menor a la máxima.")
	}
}

// BatchRun checks a batch run request. Eligibility of each client row is
// decided by the workflow, not here.
func BatchRun(req model.BatchRunRequest) (model.BatchRunRequest, error) {
	for i := range req.Clients {
		if req.Clients[i].PackageCount == 0 {
			req.Clients[i].PackageCount = 1
		}
	}
	return req, Struct(req)
}

// RunCreate checks a single run request built from existing shipments.
func RunCreate(req model.RunCreateRequest) (model.RunCreateRequest, error) {
	run, err := Run.Create(req.DeliveryRun)
	req.DeliveryRun = run

	errs := Errors{}
	if err != nil {
		fieldErrs, ok := err.(Errors)
		if !ok {
			return req, err
		}
		errs = fieldErrs
	}
	if len(req.ShipmentIDs) == 0 {
		errs.Add("envios_ids", "Debe seleccionar al menos un envío para el reparto.")
	}
	return req, errs.orNil()
}

// SequenceUpdates checks a bulk stop reorder payload.
func SequenceUpdates(updates []model.SequenceUpdate) error {
	errs := Errors{}
	for _, update := range updates {
		if err := Struct(update); err != nil {
			fieldErrs, ok := err.(Errors)
			if !ok {
				return err
			}
			for field, messages := range fieldErrs {
				for _, msg := range messages {
					errs.Add(field, msg)
				}
			}
		}
	}
	if len(updates) == 0 {
		errs.Add("paradas", "Este campo es requerido.")
	}
	return errs.orNil()
}
