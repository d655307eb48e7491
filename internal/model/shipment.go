package model

import (
	"time"

	"github.com/google/uuid"
)

type Shipment struct {
	ID                   uuid.UUID      `gorm:"column:id;primaryKey" json:"id"`
	ClientID             uuid.UUID      `gorm:"column:cliente_id" json:"cliente_id" validate:"required"`
	OriginCompanyID      *uuid.UUID     `gorm:"column:empresa_origen_id" json:"empresa_origen_id"`
	OriginAddress        string         `gorm:"column:direccion_origen" json:"direccion_origen" validate:"required,min=5"`
	OriginReference      *string        `gorm:"column:referencia_origen" json:"referencia_origen"`
	OriginLat            *float64       `gorm:"column:latitud_origen" json:"latitud_origen" validate:"omitempty,latitude"`
	OriginLng            *float64       `gorm:"column:longitud_origen" json:"longitud_origen" validate:"omitempty,longitude"`
	OriginContactName    string         `gorm:"column:contacto_origen_nombre" json:"contacto_origen_nombre" validate:"required,min=2"`
	OriginContactPhone   string         `gorm:"column:contacto_origen_telefono" json:"contacto_origen_telefono" validate:"required,min=8,phone"`
	DestinationAddress   string         `gorm:"column:direccion_destino" json:"direccion_destino" validate:"required,min=5"`
	DestinationReference *string        `gorm:"column:referencia_destino" json:"referencia_destino"`
	DestinationLat       *float64       `gorm:"column:latitud_destino" json:"latitud_destino" validate:"omitempty,latitude"`
	DestinationLng       *float64       `gorm:"column:longitud_destino" json:"longitud_destino" validate:"omitempty,longitude"`
	DestContactName      *string        `gorm:"column:contacto_destino_nombre" json:"contacto_destino_nombre"`
	DestContactPhone     *string        `gorm:"column:contacto_destino_telefono" json:"contacto_destino_telefono" validate:"omitempty,phone"`
	PackageTypeID        *uuid.UUID     `gorm:"column:tipo_paquete_id" json:"tipo_paquete_id"`
	ServiceTypeID        uuid.UUID      `gorm:"column:tipo_servicio_id" json:"tipo_servicio_id" validate:"required"`
	PackageDescription   *string        `gorm:"column:descripcion_paquete" json:"descripcion_paquete"`
	PackageCount         int            `gorm:"column:cantidad_paquetes" json:"cantidad_paquetes" validate:"gt=0"`
	EstimatedWeightKg    *float64       `gorm:"column:peso_total_estimado_kg" json:"peso_total_estimado_kg" validate:"omitempty,gt=0"`
	PackageDimensionsCm  *string        `gorm:"column:dimensiones_paquete_cm" json:"dimensiones_paquete_cm"`
	SpecialInstructions  *string        `gorm:"column:instrucciones_especiales" json:"instrucciones_especiales"`
	DeclaredValue        *float64       `gorm:"column:valor_declarado" json:"valor_declarado" validate:"omitempty,gte=0"`
	CollectOnDelivery    bool           `gorm:"column:requiere_cobro_destino" json:"requiere_cobro_destino"`
	CollectAmount        *float64       `gorm:"column:monto_cobro_destino" json:"monto_cobro_destino" validate:"omitempty,gte=0"`
	RequestedAt          time.Time      `gorm:"column:fecha_solicitud" json:"fecha_solicitud"`
	PickupWindowStart    *time.Time     `gorm:"column:fecha_recoleccion_programada_inicio" json:"fecha_recoleccion_programada_inicio"`
	PickupWindowEnd      *time.Time     `gorm:"column:fecha_recoleccion_programada_fin" json:"fecha_recoleccion_programada_fin"`
	DeliveryWindowStart  *time.Time     `gorm:"column:fecha_entrega_estimada_inicio" json:"fecha_entrega_estimada_inicio"`
	DeliveryWindowEnd    *time.Time     `gorm:"column:fecha_entrega_estimada_fin" json:"fecha_entrega_estimada_fin"`
	DeliveredAt          *time.Time     `gorm:"column:fecha_entrega_real" json:"fecha_entrega_real"`
	Status               ShipmentStatus `gorm:"column:estatus" json:"estatus" validate:"required,shipment_status"`
	AssignedDriverID     *uuid.UUID     `gorm:"column:repartidor_asignado_id" json:"repartidor_asignado_id"`
	RunID                *uuid.UUID     `gorm:"column:reparto_id" json:"reparto_id"`
	TrackingNumber       string         `gorm:"column:tracking_number" json:"tracking_number"`
	ShippingCost         *float64       `gorm:"column:costo_envio" json:"costo_envio" validate:"omitempty,gte=0"`
	InsuranceCost        *float64       `gorm:"column:costo_seguro" json:"costo_seguro" validate:"omitempty,gte=0"`
	ExtraCost            *float64       `gorm:"column:costo_adicional" json:"costo_adicional" validate:"omitempty,gte=0"`
	TotalCost            *float64       `gorm:"column:costo_total" json:"costo_total"`
	InternalNotes        *string        `gorm:"column:notas_internas" json:"notas_internas"`
	CreatedAt            time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Client         *Ref `gorm:"-" json:"cliente,omitempty"`
	OriginCompany  *Ref `gorm:"-" json:"empresa_origen,omitempty"`
	PackageType    *Ref `gorm:"-" json:"tipo_paquete,omitempty"`
	ServiceType    *Ref `gorm:"-" json:"tipo_servicio,omitempty"`
	AssignedDriver *Ref `gorm:"-" json:"repartidor_asignado,omitempty"`
}

func (Shipment) TableName() string { return "envios" }

// ComputeTotalCost sums whichever cost components are present. It returns
// nil when no component is set.
func (s Shipment) ComputeTotalCost() *float64 {
	var total float64
	found := false
	for _, part := range []*float64{s.ShippingCost, s.InsuranceCost, s.ExtraCost} {
		if part != nil {
			total += *part
			found = true
		}
	}
	if !found {
		return nil
	}
	return &total
}

// MapPoint is the reduced shipment projection used to draw map markers.
type MapPoint struct {
	ID             uuid.UUID      `json:"id"`
	TrackingNumber string         `json:"tracking_number"`
	Address        string         `json:"direccion_destino"`
	Lat            float64        `json:"latitud_destino"`
	Lng            float64        `json:"longitud_destino"`
	Status         ShipmentStatus `json:"estatus"`
	RunID          *uuid.UUID     `json:"reparto_id"`
	ClientName     *string        `json:"cliente_nombre"`
}
