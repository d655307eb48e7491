package model

import "github.com/google/uuid"

// BatchRunRequest plans one delivery run for a company: one shipment and one
// delivery stop per selected client plus a pickup stop at the company.
type BatchRunRequest struct {
	CompanyID      uuid.UUID         `json:"empresa_id" validate:"required"`
	DriverID       uuid.UUID         `json:"repartidor_id" validate:"required"`
	Date           Date              `json:"fecha_reparto" validate:"required"`
	Name           *string           `json:"nombre_reparto" validate:"omitempty,min=3"`
	EstimatedStart *string           `json:"hora_inicio_estimada" validate:"omitempty,hhmm"`
	EstimatedEnd   *string           `json:"hora_fin_estimada" validate:"omitempty,hhmm"`
	Notes          *string           `json:"notas"`
	Clients        []ClientSelection `json:"clientes" validate:"required,min=1,dive"`
}

// ClientSelection is the per-client row of the batch form.
type ClientSelection struct {
	ClientID            *uuid.UUID `json:"cliente_id"`
	Selected            bool       `json:"seleccionado"`
	ServiceTypeID       *uuid.UUID `json:"tipo_servicio_id"`
	PackageTypeID       *uuid.UUID `json:"tipo_paquete_id"`
	PackageDescription  *string    `json:"descripcion_paquete"`
	PackageCount        int        `json:"cantidad_paquetes" validate:"omitempty,gt=0"`
	EstimatedWeightKg   *float64   `json:"peso_total_estimado_kg" validate:"omitempty,gt=0"`
	ShippingCost        *float64   `json:"costo_envio" validate:"omitempty,gte=0"`
	SpecialInstructions *string    `json:"instrucciones_especiales"`
}

// Eligible reports whether the row takes part in the batch.
func (c ClientSelection) Eligible() bool {
	return c.Selected && c.ClientID != nil && c.ServiceTypeID != nil
}

type SkippedClient struct {
	ClientID uuid.UUID `json:"cliente_id"`
	Reason   string    `json:"motivo"`
}

type BatchRunResult struct {
	Run            DeliveryRun     `json:"reparto"`
	ShipmentIDs    []uuid.UUID     `json:"envios_ids"`
	StopCount      int             `json:"paradas_creadas"`
	SkippedClients []SkippedClient `json:"skipped_clients"`
	SyncWarning    *string         `json:"advertencia_sincronizacion,omitempty"`
}

// RunCreateRequest creates a run from shipments that already exist.
type RunCreateRequest struct {
	DeliveryRun
	ShipmentIDs []uuid.UUID `json:"envios_ids" validate:"required,min=1"`
}
