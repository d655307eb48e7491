package model

// ShipmentStatus is the shared delivery status enumeration. Shipments,
// delivery runs and stops all store a value from it; which values are legal
// depends on the entity (see Allowed* helpers).
type ShipmentStatus string

const (
	StatusPendingConfirmation ShipmentStatus = "pendiente_confirmacion"
	StatusPendingPickup       ShipmentStatus = "pendiente_recoleccion"
	StatusPickingUp           ShipmentStatus = "en_recoleccion"
	StatusPickedUp            ShipmentStatus = "recolectado"
	StatusEnRoute             ShipmentStatus = "en_camino"
	StatusArriving            ShipmentStatus = "llegando_destino"
	StatusDelivered           ShipmentStatus = "entregado"
	StatusNotDelivered        ShipmentStatus = "no_entregado"
	StatusReturnedToOrigin    ShipmentStatus = "devuelto_origen"
	StatusCancelled           ShipmentStatus = "cancelado"
	StatusFailed              ShipmentStatus = "fallido"
)

var allStatuses = []ShipmentStatus{
	StatusPendingConfirmation,
	StatusPendingPickup,
	StatusPickingUp,
	StatusPickedUp,
	StatusEnRoute,
	StatusArriving,
	StatusDelivered,
	StatusNotDelivered,
	StatusReturnedToOrigin,
	StatusCancelled,
	StatusFailed,
}

var runStatuses = map[ShipmentStatus]struct{}{
	StatusPendingConfirmation: {},
	StatusPendingPickup:       {},
	StatusPickingUp:           {},
	StatusEnRoute:             {},
	StatusDelivered:           {},
	StatusCancelled:           {},
	StatusFailed:              {},
}

var stopStatuses = map[ShipmentStatus]struct{}{
	StatusPendingPickup:    {},
	StatusPickingUp:        {},
	StatusPickedUp:         {},
	StatusEnRoute:          {},
	StatusArriving:         {},
	StatusDelivered:        {},
	StatusNotDelivered:     {},
	StatusReturnedToOrigin: {},
	StatusCancelled:        {},
	StatusFailed:           {},
}

func AllStatuses() []ShipmentStatus {
	out := make([]ShipmentStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func (s ShipmentStatus) Valid() bool {
	for _, status := range allStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s ShipmentStatus) AllowedForShipment() bool {
	return s.Valid()
}

// AllowedForRun reports whether a delivery run may carry the status.
// Runs only track the coarse lifecycle of the whole route.
func (s ShipmentStatus) AllowedForRun() bool {
	_, ok := runStatuses[s]
	return ok
}

// AllowedForStop reports whether a stop may carry the status. Stops exist
// only inside a planned run, so they never await confirmation.
func (s ShipmentStatus) AllowedForStop() bool {
	_, ok := stopStatuses[s]
	return ok
}

// PropagatesToShipment reports whether setting a stop to this status must
// also be written to the linked shipment.
func (s ShipmentStatus) PropagatesToShipment() bool {
	switch s {
	case StatusDelivered, StatusNotDelivered, StatusReturnedToOrigin:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status closes a shipment's lifecycle.
func (s ShipmentStatus) Terminal() bool {
	switch s {
	case StatusDelivered, StatusNotDelivered, StatusReturnedToOrigin, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}

type StopType string

const (
	StopTypeCompanyPickup  StopType = "recoleccion_empresa"
	StopTypeClientDelivery StopType = "entrega_cliente"
	StopTypeLogisticsPoint StopType = "punto_logistico"
	StopTypeReturnToOrigin StopType = "devolucion_origen"
)

type DriverStatus string

const (
	DriverAvailable   DriverStatus = "disponible"
	DriverEnRoute     DriverStatus = "en_ruta"
	DriverBusy        DriverStatus = "ocupado_otro"
	DriverInactive    DriverStatus = "inactivo"
	DriverMaintenance DriverStatus = "en_mantenimiento"
)

type VehicleType string

const (
	VehicleMotorbike VehicleType = "moto"
	VehicleCar       VehicleType = "auto"
	VehicleBicycle   VehicleType = "bicicleta"
	VehicleSmallVan  VehicleType = "utilitario_pequeno"
	VehicleLargeVan  VehicleType = "utilitario_grande"
)

type CalculatorType string

const (
	CalculatorExpressMoto CalculatorType = "express_moto"
	CalculatorExpressAuto CalculatorType = "express_auto"
	CalculatorScheduled24 CalculatorType = "programado_24h"
	CalculatorLowCost72   CalculatorType = "lowcost_72h"
	CalculatorCustom      CalculatorType = "personalizado"
)
